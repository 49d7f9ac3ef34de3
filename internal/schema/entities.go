package schema

import (
	"fmt"

	"github.com/surfedu/searchclient/internal/domain"
)

// BuildProjects returns the schema for a project index.
func BuildProjects() Schema {
	props := map[string]any{
		"project_status":        keyword(),
		"title":                 text(),
		"description":           text(),
		"goal":                  text(),
		"approach":              text(),
		"results":               text(),
		"keywords":              keywordText(),
		"parties":               keyword(),
		"products":              keyword(),
		"themes":                keyword(),
		"sia_project_reference": keyword(),
		"external_id":           keyword(),
		// provider is also searchable so projects can be narrowed by provider through text
		"provider": map[string]any{
			"type":   "keyword",
			"fields": map[string]any{"filter_search": text()},
		},
	}
	suggestProperties(props)
	return newSchema(baseAnalyzers(), nil, props)
}

// BuildOrganizations returns the schema for an organization index.
func BuildOrganizations() Schema {
	props := map[string]any{
		"name":        foldedText(),
		"description": foldedText(),
		"type":        keyword(),
		"provider":    keyword(),
	}
	suggestProperties(props)
	return newSchema(baseAnalyzers(), nil, props)
}

// BuildPersons returns the schema for a person index.
func BuildPersons() Schema {
	props := map[string]any{
		"name":        foldedText(),
		"description": foldedText(),
		"job_title":   text(),
		"email":       keyword(),
		"external_id": keyword(),
		"dai":         keyword(),
		"isni":        keyword(),
		"orcid":       keyword(),
		"themes":      keyword(),
		"parties":     keyword(),
		"provider":    keyword(),
	}
	suggestProperties(props)
	return newSchema(baseAnalyzers(), nil, props)
}

// BuildLegacyLanguage returns the schema for a single language product index used
// by the multilingual-indices layout.
func BuildLegacyLanguage(lang string, docType domain.DocumentType, decompoundWordList string) (Schema, error) {
	if !domain.IsLanguage(lang) {
		return Schema{}, fmt.Errorf("unknown language %q", lang)
	}
	var extra map[string]any
	switch docType {
	case domain.DocumentTypeLearningMaterial:
		extra = map[string]any{
			"aggregation_level":             keyword(),
			"doi":                           keyword(),
			"material_types":                keyword(),
			"lom_educational_levels":        keyword(),
			"disciplines":                   keyword(),
			"study_vocabulary":              keyword(),
			"learning_material_disciplines": keyword(),
			"learning_material_disciplines_normalized": keyword(),
			"consortium":                               keyword(),
		}
	case domain.DocumentTypeResearchProduct:
		extra = map[string]any{
			"research_themes":      keyword(),
			"research_object_type": keyword(),
			"parties":              keywordText(),
			"projects":             keywordText(),
			"extension": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          text(),
					"is_addition": boolean(),
				},
			},
		}
	default:
		return Schema{}, fmt.Errorf("%w: %q", domain.ErrUnknownDocumentType, docType)
	}

	analyzer, searchAnalyzer := languageAnalyzers(lang, decompoundWordList)
	if searchAnalyzer == "" {
		searchAnalyzer = analyzer
	}
	props := map[string]any{
		"title":       analyzedText(analyzer, searchAnalyzer),
		"text":        analyzedText(analyzer, searchAnalyzer),
		"description": analyzedText(analyzer, searchAnalyzer),
		"url":         text(),
		"authors": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":        keywordText(),
				"email":       keyword(),
				"external_id": keyword(),
				"dai":         keyword(),
				"orcid":       keyword(),
				"isni":        keyword(),
			},
		},
		"publishers":                keywordText(),
		"publisher_date":            date(),
		"publisher_year":            keyword(),
		"publisher_year_normalized": keyword(),
		"modified_at":               date(),
		"keywords":                  keywordText(),
		"technical_type":            keyword(),
		"id":                        text(),
		"external_id":               keyword(),
		"harvest_source":            keyword(),
		"is_part_of":                keyword(),
		"has_parts":                 keyword(),
	}
	for name, prop := range extra {
		props[name] = prop
	}
	suggestProperties(props)

	analyzers, filters := textAnalyzers(decompoundWordList)
	return newSchema(analyzers, filters, props), nil
}
