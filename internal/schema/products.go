package schema

import (
	"fmt"

	"github.com/surfedu/searchclient/internal/domain"
)

// TextGroups are the per-language text collections of a product.
var TextGroups = []string{"titles", "subtitles", "descriptions", "contents", "transcriptions"}

// BuildProducts returns the schema for a product index in the multilingual texts layout.
// A non-empty decompoundWordList enables the Dutch decompound analyzer.
func BuildProducts(docType domain.DocumentType, decompoundWordList string) (Schema, error) {
	extra, err := productTypeProperties(docType, decompoundWordList)
	if err != nil {
		return Schema{}, err
	}

	props := productProperties()
	for name, prop := range extra {
		props[name] = prop
	}
	props["language"] = keyword()
	props["texts"] = multilingualTexts(decompoundWordList)

	analyzers, filters := textAnalyzers(decompoundWordList)
	return newSchema(analyzers, filters, props), nil
}

// productProperties are shared by every product document type.
func productProperties() map[string]any {
	props := map[string]any{
		"url": keyword(),
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
		"publisher_year":            keyword(),
		"publisher_year_normalized": keyword(),
		"keywords":                  keywordText(),
		"technical_type":            keyword(),
		"technical_types":           keyword(),
		"licenses":                  keyword(),
		"harvest_source":            keyword(),
		"is_part_of":                keyword(),
		"has_parts":                 keyword(),
		"doi":                       keyword(),
		"external_id":               keyword(),
		"publisher_date":            date(),
		"published_at":              date(),
		"modified_at":               date(),
	}
	suggestProperties(props)
	return props
}

func productTypeProperties(docType domain.DocumentType, decompoundWordList string) (map[string]any, error) {
	switch docType {
	case domain.DocumentTypeLearningMaterial:
		return learningMaterialProperties(decompoundWordList), nil
	case domain.DocumentTypeResearchProduct:
		return researchProductProperties(), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDocumentType, docType)
}

func learningMaterialProperties(decompoundWordList string) map[string]any {
	bilingual := func() map[string]any {
		return map[string]any{
			"properties": map[string]any{
				"keyword": keyword(),
				"nl":      analyzedText(AnalyzerDutch, dutchSearchAnalyzer(decompoundWordList)),
				"en":      analyzedText(AnalyzerEnglish, ""),
			},
		}
	}
	return map[string]any{
		"aggregation_level":      keyword(),
		"material_types":         keyword(),
		"lom_educational_levels": keyword(),
		"disciplines":            keyword(),
		"study_vocabulary":       bilingual(),
		"disciplines_normalized": bilingual(),
		"consortium":             bilingual(),
	}
}

func researchProductProperties() map[string]any {
	return map[string]any{
		"research_themes":      keyword(),
		"research_object_type": keyword(),
		"parties":              keywordText(),
	}
}

// multilingualTexts maps texts.<lang>.<group> for every indexed language.
func multilingualTexts(decompoundWordList string) map[string]any {
	languages := make(map[string]any, len(domain.Languages()))
	for _, lang := range domain.Languages() {
		analyzer, searchAnalyzer := languageAnalyzers(lang, decompoundWordList)
		groups := make(map[string]any, len(TextGroups))
		for _, group := range TextGroups {
			groups[group] = map[string]any{
				"properties": map[string]any{
					"text":       analyzedText(analyzer, searchAnalyzer),
					"url":        keyword(),
					"provider":   keyword(),
					"by_machine": boolean(),
				},
			}
		}
		languages[lang] = map[string]any{"properties": groups}
	}
	return map[string]any{"properties": languages}
}

// languageAnalyzers returns the index and search analyzer for a language.
// Only Dutch has a distinct search analyzer.
func languageAnalyzers(lang, decompoundWordList string) (string, string) {
	switch lang {
	case domain.LanguageDutch:
		return AnalyzerDutch, dutchSearchAnalyzer(decompoundWordList)
	case domain.LanguageEnglish:
		return AnalyzerEnglish, ""
	}
	return AnalyzerStandard, ""
}
