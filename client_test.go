package searchclient

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/surfedu/searchclient/internal/config"
	"github.com/surfedu/searchclient/internal/db"
)

// --- Mocks ---

type fakeEngine struct {
	mu       sync.Mutex
	searchFn func(indices []string, body map[string]any) (*db.SearchResponse, error)
	countFn  func(indices []string) (int, error)
	pingErr  error
	existing map[string]bool
	created  map[string][]byte
	deleted  []string
	closed   bool
	searches [][]string
}

func (f *fakeEngine) Ping(context.Context) error { return f.pingErr }

func (f *fakeEngine) Search(_ context.Context, indices []string, body map[string]any) (*db.SearchResponse, error) {
	f.mu.Lock()
	f.searches = append(f.searches, indices)
	f.mu.Unlock()
	if f.searchFn == nil {
		return &db.SearchResponse{}, nil
	}
	return f.searchFn(indices, body)
}

func (f *fakeEngine) Count(_ context.Context, indices []string) (int, error) {
	if f.countFn == nil {
		return 0, nil
	}
	return f.countFn(indices)
}

func (f *fakeEngine) CreateIndex(_ context.Context, name string, body []byte) error {
	if f.created == nil {
		f.created = make(map[string][]byte)
	}
	f.created[name] = body
	return nil
}

func (f *fakeEngine) DeleteIndex(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeEngine) IndexExists(_ context.Context, name string) (bool, error) {
	return f.existing[name], nil
}

func (f *fakeEngine) Close() { f.closed = true }

func (f *fakeEngine) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, f, timeout)
}

func score(v float64) *float64 { return &v }

func newTestClient(t *testing.T, engine *fakeEngine, opts ...Option) *Client {
	t.Helper()
	c, err := New(append([]Option{withEngine(engine)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

// --- Tests ---

func TestNew_NoAddress(t *testing.T) {
	_, err := New(WithPlatform("edusources"))
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestNew_UnknownPlatform(t *testing.T) {
	_, err := New(WithOpenSearch("http://localhost:9200"), WithPlatform("wikipedia"))
	if !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("expected ErrUnknownPlatform, got %v", err)
	}
}

func TestNew_UnknownPreset(t *testing.T) {
	_, err := New(withEngine(&fakeEngine{}), WithPlatform("mbodata"), WithPresets("projects"))
	if !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "solr", addrs: []string{"localhost:8983"}}
	if _, err := createEngine(cfg); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestCreateEngine_Drivers(t *testing.T) {
	for _, driver := range []string{config.DriverOpenSearch, config.DriverElasticsearch} {
		t.Run(driver, func(t *testing.T) {
			e, err := createEngine(&clientConfig{driver: driver, addrs: []string{"http://localhost:9200"}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			e.Close()
		})
	}
}

func TestNew_ReadinessCheckFails(t *testing.T) {
	engine := &fakeEngine{pingErr: db.ErrUnavailable}
	_, err := New(withEngine(engine), WithPlatform("edusources"), WithReadinessCheck(50*time.Millisecond))
	if err == nil {
		t.Fatal("expected readiness error")
	}
	if !engine.closed {
		t.Error("engine should be closed after a failed readiness check")
	}
}

func TestNew_DefaultPresetAndAliasPrefix(t *testing.T) {
	c := newTestClient(t, &fakeEngine{}, WithPlatform("edusources"), WithAliasPrefix("test"))

	got := c.Configuration().Aliases()
	want := []string{"test-edusources-nl", "test-edusources-en", "test-edusources-unk"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("aliases = %v, want %v", got, want)
	}
}

func TestNew_MergedPresets(t *testing.T) {
	c := newTestClient(t, &fakeEngine{}, WithPlatform("publinova"), WithPresets("projects", "products"))

	got := c.Configuration().Aliases()
	if strings.Join(got, ",") != "publinova-products,publinova-projects" {
		t.Errorf("aliases = %v", got)
	}
}

func TestNew_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	newTestClient(t, &fakeEngine{}, WithPlatform("mbodata"), WithPrometheus(reg))
	newTestClient(t, &fakeEngine{}, WithPlatform("mbodata"), WithPrometheus(reg))
}

func TestClient_Close(t *testing.T) {
	engine := &fakeEngine{}
	c, err := New(withEngine(engine), WithPlatform("edusources"))
	if err != nil {
		t.Fatal(err)
	}
	c.Close()
	if !engine.closed {
		t.Error("expected engine to be closed")
	}
}

func TestClient_Search(t *testing.T) {
	engine := &fakeEngine{
		searchFn: func(_ []string, _ map[string]any) (*db.SearchResponse, error) {
			return &db.SearchResponse{Hits: db.Hits{
				Total: db.Total{Value: 1, Relation: "eq"},
				Hits: []db.Hit{{
					Index: "edusources-products--20240101",
					ID:    "sharekit:edusources:1",
					Score: score(3),
					Source: map[string]any{
						"srn":         "sharekit:edusources:1",
						"set":         "sharekit:edusources",
						"external_id": "1",
						"url":         "https://example.com/1",
						"title":       "Wiskunde",
					},
				}},
			}}, nil
		},
	}
	c := newTestClient(t, engine, WithPlatform("edusources"), WithPresets("products"))

	res, err := c.Search(context.Background(), "wiskunde", &SearchOptions{
		Filters:  []Filter{NewFilter("technical_type", "video")},
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Results) != 1 {
		t.Fatalf("results = %d", len(res.Results))
	}
	if _, ok := res.Results[0].(*LearningMaterial); !ok {
		t.Errorf("expected *LearningMaterial, got %T", res.Results[0])
	}
	if engine.searches[0][0] != "edusources-products" {
		t.Errorf("searched %v", engine.searches[0])
	}
}

func TestClient_SearchInvalidRequest(t *testing.T) {
	c := newTestClient(t, &fakeEngine{}, WithPlatform("edusources"))
	_, err := c.Search(context.Background(), strings.Repeat("a", 5000), nil)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestClient_MoreLikeThisRequiresIdentifier(t *testing.T) {
	c := newTestClient(t, &fakeEngine{}, WithPlatform("edusources"))
	_, err := c.MoreLikeThis(context.Background(), "", &SimilarOptions{Language: "nl"})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestClient_Stats(t *testing.T) {
	engine := &fakeEngine{countFn: func(indices []string) (int, error) {
		if indices[0] == "publinova-projects" {
			return 3, nil
		}
		return 7, nil
	}}
	c := newTestClient(t, engine, WithPlatform("publinova"), WithPresets("products", "projects"))

	stats, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"documents":10,"products":7,"projects":3}` {
		t.Errorf("stats = %s", data)
	}
}

func TestClient_IndexManagement(t *testing.T) {
	engine := &fakeEngine{existing: map[string]bool{"edusources-products": true}}
	c := newTestClient(t, engine, WithPlatform("edusources"), WithDecompoundWordList("analyzers/F1"))
	ctx := context.Background()

	if _, err := c.CreateIndex(ctx, "edusources-products--20240101", ""); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	if !strings.Contains(string(engine.created["edusources-products--20240101"]), "analyzers/F1") {
		t.Error("expected the word list in the created schema")
	}
	if _, err := c.CreateIndex(ctx, "edusources-products", "poem"); !errors.Is(err, ErrUnknownDocumentType) {
		t.Fatalf("expected ErrUnknownDocumentType, got %v", err)
	}

	ok, err := c.IndexExists(ctx, "edusources-products")
	if err != nil || !ok {
		t.Fatalf("IndexExists = %v, %v", ok, err)
	}
	if err := c.DeleteIndex(ctx, "edusources-products--20240101"); err != nil {
		t.Fatalf("DeleteIndex: %v", err)
	}
	if len(engine.deleted) != 1 {
		t.Errorf("deleted = %v", engine.deleted)
	}
}

func TestClient_Schema(t *testing.T) {
	c := newTestClient(t, &fakeEngine{}, WithPlatform("publinova"))
	sch, err := c.Schema("publinova-projects", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sch.Properties()["project_status"]; !ok {
		t.Error("expected project schema")
	}
}

func TestClient_Health(t *testing.T) {
	engine := &fakeEngine{existing: map[string]bool{"publinova-products": true}}
	c := newTestClient(t, engine, WithPlatform("publinova"), WithPresets("products", "projects"))

	r := c.Health(context.Background())
	if r.Status != "degraded" {
		t.Errorf("status = %q", r.Status)
	}
	if r.Checks["publinova-projects"] != "missing" {
		t.Errorf("checks = %v", r.Checks)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg, err := config.Parse([]byte(`
engine:
  driver: elasticsearch
  addrs: ["http://localhost:9200"]
search:
  platform: publinova
  presets: [projects]
  alias_prefix: acc
`))
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewFromConfig(cfg, nil, withEngine(&fakeEngine{}))
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	defer c.Close()

	if got := c.Configuration().Aliases(); len(got) != 1 || got[0] != "acc-publinova-projects" {
		t.Errorf("aliases = %v", got)
	}
}

func TestPresets(t *testing.T) {
	keys, err := Presets()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.Join(keys, ","), "products:multilingual-indices") {
		t.Errorf("keys = %v", keys)
	}
}

func TestClient_GetDocumentsByID_DefaultsToExternalID(t *testing.T) {
	var bodies []map[string]any
	engine := &fakeEngine{searchFn: func(_ []string, body map[string]any) (*db.SearchResponse, error) {
		bodies = append(bodies, body)
		return &db.SearchResponse{}, nil
	}}
	c := newTestClient(t, engine, WithPlatform("edusources"), WithPresets("products"))
	ctx := context.Background()

	if _, err := c.GetDocumentsByID(ctx, []string{"edurep_delen:abc"}, nil); err != nil {
		t.Fatalf("GetDocumentsByID: %v", err)
	}
	if _, err := c.GetDocumentsByID(ctx, []string{"sharekit:edusources:1"}, &LookupOptions{BySRN: true}); err != nil {
		t.Fatalf("GetDocumentsByID by srn: %v", err)
	}

	external, err := json.Marshal(bodies[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(external), `"external_id":["WikiwijsDelen:urn:uuid:abc"]`) {
		t.Errorf("default lookup body = %s", external)
	}
	srn, err := json.Marshal(bodies[1])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(srn), `"_id":["sharekit:edusources:1"]`) {
		t.Errorf("srn lookup body = %s", srn)
	}
}
