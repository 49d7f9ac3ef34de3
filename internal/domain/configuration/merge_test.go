package configuration

import (
	"errors"
	"reflect"
	"testing"

	"github.com/surfedu/searchclient/internal/domain"
	"github.com/surfedu/searchclient/internal/domain/document"
)

func TestMerged(t *testing.T) {
	products := mustBuild(t, BuildProducts, domain.PlatformPublinova)
	projects := mustBuild(t, BuildProjects, domain.PlatformPublinova)

	merged, err := Merged(products, projects)
	if err != nil {
		t.Fatalf("Merged: %v", err)
	}

	if got := merged.Entities(); !reflect.DeepEqual(got, []domain.Entity{domain.EntityProducts, domain.EntityProjects}) {
		t.Errorf("Entities() = %v", got)
	}
	if got := merged.Aliases(); !reflect.DeepEqual(got, []string{"publinova-products", "publinova-projects"}) {
		t.Errorf("Aliases() = %v", got)
	}
	if got, want := len(merged.SearchFields()), len(products.SearchFields())+len(projects.SearchFields()); got != want {
		t.Errorf("search fields not concatenated: got %d, want %d", got, want)
	}
	if got := merged.FilterFields(); len(got) != 0 {
		t.Errorf("filter fields should be intersected to nothing, got %v", got)
	}
	if merged.DistanceFeatureField() != "" {
		t.Errorf("disagreeing distance feature fields should be cleared, got %q", merged.DistanceFeatureField())
	}
	if got := merged.Serializers(); got[domain.EntityProjects] != document.KindProject ||
		got[domain.EntityProducts] != document.KindResearchProduct {
		t.Errorf("Serializers() = %v", got)
	}

	// inputs stay untouched
	if len(products.Entities()) != 1 || len(projects.Entities()) != 1 {
		t.Error("Merged modified its inputs")
	}
}

func TestMerged_IntersectsFilterFields(t *testing.T) {
	persons := mustBuild(t, BuildPersons, domain.PlatformEdusources)
	organizations := mustBuild(t, BuildOrganizations, domain.PlatformEdusources)

	merged, err := Merged(persons, organizations)
	if err != nil {
		t.Fatalf("Merged: %v", err)
	}
	if got := merged.FilterFields(); !reflect.DeepEqual(got, []string{"provider"}) {
		t.Errorf("FilterFields() = %v, want [provider]", got)
	}
}

func TestMerged_Failures(t *testing.T) {
	products := mustBuild(t, BuildProducts, domain.PlatformPublinova)
	projects := mustBuild(t, BuildProjects, domain.PlatformPublinova)
	eduProducts := mustBuild(t, BuildProducts, domain.PlatformEdusources)
	legacy := mustBuild(t, BuildMultilingualIndices, domain.PlatformPublinova)

	shadow, err := New(Params{
		Platform: domain.PlatformPublinova,
		Entities: []domain.Entity{domain.EntityPersons},
		Serializers: map[domain.Entity]document.Kind{
			domain.EntityPersons:  document.KindPerson,
			domain.EntityProducts: document.KindResearchProduct,
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name string
		a, b Configuration
	}{
		{"different platforms", eduProducts, projects},
		{"overlapping entity", products, products},
		{"overlapping serializer", products, shadow},
		{"left disallows multi entity", legacy, projects},
		{"right disallows multi entity", projects, legacy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merged(tt.a, tt.b)
			if !errors.Is(err, domain.ErrIncompatibleMerge) {
				t.Fatalf("expected ErrIncompatibleMerge, got %v", err)
			}
			var me *MergeError
			if !errors.As(err, &me) || me.Reason == "" {
				t.Errorf("expected *MergeError with a reason, got %v", err)
			}
		})
	}
}

func TestMerged_KeepsAgreeingDistanceFeature(t *testing.T) {
	a, err := New(Params{
		Platform:             domain.PlatformPublinova,
		Entities:             []domain.Entity{domain.EntityProducts},
		Serializers:          map[domain.Entity]document.Kind{domain.EntityProducts: document.KindResearchProduct},
		DistanceFeatureField: "published_at",
		Highlights:           map[string][]string{"text": {"texts:contents"}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(Params{
		Platform:             domain.PlatformPublinova,
		Entities:             []domain.Entity{domain.EntityProjects},
		Serializers:          map[domain.Entity]document.Kind{domain.EntityProjects: document.KindProject},
		DistanceFeatureField: "published_at",
		Highlights:           map[string][]string{"text": {"goal"}},
		AliasPrefix:          "test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	merged, err := Merged(a, b)
	if err != nil {
		t.Fatalf("Merged: %v", err)
	}
	if merged.DistanceFeatureField() != "published_at" {
		t.Errorf("distance feature field = %q", merged.DistanceFeatureField())
	}
	if got := merged.Highlights()["text"]; !reflect.DeepEqual(got, []string{"goal", "texts:contents"}) {
		t.Errorf("highlights not united: %v", got)
	}
	if merged.AliasPrefix() != "test" {
		t.Errorf("alias prefix = %q", merged.AliasPrefix())
	}
}
