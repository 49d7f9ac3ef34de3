package index

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/surfedu/searchclient/internal/db"
	"github.com/surfedu/searchclient/internal/domain"
	"github.com/surfedu/searchclient/internal/schema"
)

// --- Mocks ---

type mockManager struct {
	createdName string
	createdBody []byte
	deleted     string
	exists      bool
	createErr   error
	deleteErr   error
	existsErr   error
}

func (m *mockManager) CreateIndex(_ context.Context, name string, body []byte) error {
	m.createdName = name
	m.createdBody = body
	return m.createErr
}

func (m *mockManager) DeleteIndex(_ context.Context, name string) error {
	m.deleted = name
	return m.deleteErr
}

func (m *mockManager) IndexExists(_ context.Context, _ string) (bool, error) {
	return m.exists, m.existsErr
}

// --- Tests ---

func TestCreate_Products(t *testing.T) {
	m := &mockManager{}
	svc := New(m, "analyzers/F1", nil)

	sch, err := svc.Create(context.Background(), "test-publinova-products--20240101", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.createdName != "test-publinova-products--20240101" {
		t.Errorf("created %q", m.createdName)
	}
	if _, ok := sch.Properties()["research_themes"]; !ok {
		t.Error("publinova products should default to the research product schema")
	}
	if _, ok := sch.Analyzers()[schema.AnalyzerDecompound]; !ok {
		t.Error("expected decompound analyzer")
	}

	var body map[string]any
	if err := json.Unmarshal(m.createdBody, &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if _, ok := body["mappings"]; !ok {
		t.Error("body misses mappings")
	}
}

func TestCreate_ExplicitDocumentType(t *testing.T) {
	svc := New(&mockManager{}, "", nil)
	sch, err := svc.Create(context.Background(), "publinova-products", domain.DocumentTypeLearningMaterial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sch.Properties()["lom_educational_levels"]; !ok {
		t.Error("expected learning material schema")
	}
}

func TestCreate_LegacyLanguageIndex(t *testing.T) {
	svc := New(&mockManager{}, "", nil)
	sch, err := svc.Create(context.Background(), "edusources-en", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sch.Properties()["title"]; !ok {
		t.Error("expected legacy language schema")
	}
}

func TestCreate_Entities(t *testing.T) {
	tests := map[string]string{
		"publinova-projects":       "project_status",
		"publinova-persons":        "job_title",
		"edusources-organizations": "name",
	}
	for name, field := range tests {
		t.Run(name, func(t *testing.T) {
			sch, err := New(&mockManager{}, "", nil).Create(context.Background(), name, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := sch.Properties()[field]; !ok {
				t.Errorf("expected property %q", field)
			}
		})
	}
}

func TestCreate_InvalidNames(t *testing.T) {
	svc := New(&mockManager{}, "", nil)
	tests := []struct {
		name string
		want error
	}{
		{"products", domain.ErrInvalidAlias},
		{"wikipedia-products", domain.ErrUnknownPlatform},
		{"edusources-things", domain.ErrUnknownEntity},
	}
	for _, tt := range tests {
		if _, err := svc.Create(context.Background(), tt.name, ""); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestCreate_EngineError(t *testing.T) {
	m := &mockManager{createErr: &db.Error{Op: db.OpCreateIndex, Err: db.ErrIndexExists}}
	_, err := New(m, "", nil).Create(context.Background(), "edusources-products", "")
	if !errors.Is(err, db.ErrIndexExists) {
		t.Fatalf("expected ErrIndexExists, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	m := &mockManager{}
	if err := New(m, "", nil).Delete(context.Background(), "edusources-products"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.deleted != "edusources-products" {
		t.Errorf("deleted %q", m.deleted)
	}

	m.deleteErr = &db.Error{Op: db.OpDeleteIndex, Err: db.ErrIndexNotFound}
	if err := New(m, "", nil).Delete(context.Background(), "x-y"); !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	m := &mockManager{exists: true}
	ok, err := New(m, "", nil).Exists(context.Background(), "edusources-products")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
}
