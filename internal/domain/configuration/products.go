package configuration

import (
	"fmt"

	"github.com/surfedu/searchclient/internal/domain"
	"github.com/surfedu/searchclient/internal/domain/document"
)

// DefaultDistanceFeatureField is the date used for recency boosting of products.
const DefaultDistanceFeatureField = "publisher_date"

var productFilterFields = []string{
	"publisher_year_normalized", "authors.name.keyword", "language.keyword", "copyright.keyword", "licenses",
	"publishers.keyword", "technical_type", "technical_types", "publisher_year",
}

var learningMaterialFilterFields = []string{
	"study_vocabulary.keyword", "disciplines_normalized.keyword",
	"lom_educational_levels", "consortium.keyword", "material_types", "aggregation_level",
}

// multilingualSearchFields lists the boosted texts fields for every language.
func multilingualSearchFields() []string {
	var fields []string
	for _, lang := range domain.Languages() {
		for _, group := range []struct {
			name  string
			boost string
		}{
			{"titles", "^2"},
			{"subtitles", "^2"},
			{"contents", ""},
			{"descriptions", ""},
		} {
			base := "texts." + lang + "." + group.name + ".text"
			fields = append(fields, base+group.boost, base+".analyzed"+group.boost, base+".folded"+group.boost)
		}
	}
	return fields
}

// termSearchFields lists the boosted fields of multilingual term properties.
func termSearchFields(properties ...string) []string {
	var fields []string
	for _, prop := range properties {
		for _, lang := range []string{domain.LanguageDutch, domain.LanguageEnglish} {
			base := prop + "." + lang
			fields = append(fields, base+"^2", base+".analyzed^2", base+".folded^2")
		}
	}
	return fields
}

// BuildProducts returns the entity-indices product configuration of a platform.
func BuildProducts(platform domain.Platform) (Configuration, error) {
	filterFields := append([]string{}, productFilterFields...)
	searchFields := multilingualSearchFields()

	var kind document.Kind
	switch platform {
	case domain.PlatformEdusources, domain.PlatformMBOData:
		kind = document.KindLearningMaterial
		filterFields = append(filterFields, learningMaterialFilterFields...)
		searchFields = append(searchFields,
			"keywords^4", "keywords.folded^4",
			"authors.name.folded^2",
			"publishers^2", "publishers.folded^2",
		)
		searchFields = append(searchFields, termSearchFields("consortium", "study_vocabulary", "disciplines_normalized")...)
	case domain.PlatformPublinova:
		kind = document.KindResearchProduct
		searchFields = append(searchFields,
			"keywords", "keywords.folded",
			"authors.name.folded",
			"parties.name.folded",
			"projects.name.folded",
		)
	default:
		return Configuration{}, fmt.Errorf("build product configuration: %w: %q", domain.ErrUnknownPlatform, platform)
	}

	return New(Params{
		Platform:             platform,
		Layout:               LayoutEntityIndices,
		Entities:             []domain.Entity{domain.EntityProducts},
		SearchFields:         searchFields,
		FilterFields:         filterFields,
		RangeFilterFields:    []string{"published_at", "modified_at", "publisher_date"},
		Serializers:          map[domain.Entity]document.Kind{domain.EntityProducts: kind},
		DistanceFeatureField: DefaultDistanceFeatureField,
		Highlights: map[string][]string{
			"description": {"texts:descriptions"},
			"text":        {"texts:contents"},
		},
		MoreLikeThisReferences: []string{"texts:titles", "texts:descriptions"},
	})
}

var legacySearchFields = map[domain.DocumentType][]string{
	domain.DocumentTypeLearningMaterial: {
		"title^2", "title.analyzed^2", "title.folded^2",
		"text", "text.analyzed", "text.folded",
		"description", "description.analyzed", "description.folded",
		"keywords", "keywords.folded",
		"authors.name.folded",
		"publishers", "publishers.folded",
		"ideas", "ideas.folded",
	},
	domain.DocumentTypeResearchProduct: {
		"title^2", "title.analyzed^2", "title.folded^2",
		"text", "text.analyzed", "text.folded",
		"description", "description.analyzed", "description.folded",
		"keywords", "keywords.folded",
		"authors.name.folded",
		"parties.name.folded",
		"projects.name.folded",
	},
}

// BuildMultilingualIndices returns the legacy product configuration that keeps
// one index per language. It can't be merged with other configurations.
func BuildMultilingualIndices(platform domain.Platform) (Configuration, error) {
	filterFields := []string{
		"publisher_year_normalized", "authors.name.keyword", "language.keyword", "copyright.keyword",
		"publishers.keyword", "technical_type", "publisher_year",
	}
	var kind document.Kind
	var docType domain.DocumentType
	switch platform {
	case domain.PlatformEdusources:
		kind, docType = document.KindLearningMaterial, domain.DocumentTypeLearningMaterial
		filterFields = append(filterFields,
			"study_vocabulary", "learning_material_disciplines_normalized",
			"lom_educational_levels", "consortium.keyword", "material_types", "aggregation_level",
		)
	case domain.PlatformPublinova:
		kind, docType = document.KindResearchProduct, domain.DocumentTypeResearchProduct
		filterFields = append(filterFields, "research_object_type", "research_themes", "has_material")
	default:
		return Configuration{}, fmt.Errorf("build multilingual indices configuration: %w: %q",
			domain.ErrUnknownPlatform, platform)
	}

	return New(Params{
		Platform:             platform,
		Layout:               LayoutMultilingualIndices,
		Entities:             []domain.Entity{domain.EntityProducts},
		SearchFields:         legacySearchFields[docType],
		FilterFields:         filterFields,
		RangeFilterFields:    []string{"publisher_date"},
		Serializers:          map[domain.Entity]document.Kind{domain.EntityProducts: kind},
		DistanceFeatureField: DefaultDistanceFeatureField,
		Highlights: map[string][]string{
			"description": {"description"},
			"text":        {"text"},
		},
		MoreLikeThisReferences: []string{"title", "description"},
	})
}

// BuildProjects returns the project configuration.
func BuildProjects(platform domain.Platform) (Configuration, error) {
	return New(Params{
		Platform:     platform,
		Layout:       LayoutEntityIndices,
		Entities:     []domain.Entity{domain.EntityProjects},
		SearchFields: []string{"title", "description", "keywords", "keywords.folded", "goal"},
		FilterFields: []string{"project_status"},
		Serializers:  map[domain.Entity]document.Kind{domain.EntityProjects: document.KindProject},
	})
}

// BuildPersons returns the person configuration.
func BuildPersons(platform domain.Platform) (Configuration, error) {
	return New(Params{
		Platform: platform,
		Layout:   LayoutEntityIndices,
		Entities: []domain.Entity{domain.EntityPersons},
		SearchFields: []string{
			"name^2", "name.folded^2", "description", "description.folded", "job_title", "themes",
		},
		FilterFields: []string{"provider", "parties"},
		Serializers:  map[domain.Entity]document.Kind{domain.EntityPersons: document.KindPerson},
	})
}

// BuildOrganizations returns the organization configuration.
func BuildOrganizations(platform domain.Platform) (Configuration, error) {
	return New(Params{
		Platform:     platform,
		Layout:       LayoutEntityIndices,
		Entities:     []domain.Entity{domain.EntityOrganizations},
		SearchFields: []string{"name^2", "name.folded^2", "description", "description.folded"},
		FilterFields: []string{"provider", "type"},
		Serializers: map[domain.Entity]document.Kind{
			domain.EntityOrganizations: document.KindOrganization,
		},
	})
}
