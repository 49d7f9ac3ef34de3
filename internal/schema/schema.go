// Package schema builds the index settings and mappings for every entity the
// search client reads from. The output is plain JSON for an index create call.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/surfedu/searchclient/internal/domain"
)

// Analyzer and filter names shared between settings and mappings.
const (
	AnalyzerTrigram    = "trigram"
	AnalyzerFolding    = "folding"
	AnalyzerDutch      = "custom_dutch"
	AnalyzerDecompound = "dutch_dictionary_decompound"
	AnalyzerEnglish    = "english"
	AnalyzerStandard   = "standard"
	FilterDecompound   = "dictionary_decompound"
	CompletionField    = "suggest_completion"
	PhraseSuggestField = "suggest_phrase"
	dateFormat         = "strict_date_optional_time||yyyy-MM||epoch_millis"
	keywordIgnoreAbove = 256
	defaultShards      = 1
	defaultReplicas    = 0
	shingleMinSize     = 2
	shingleMaxSize     = 3
)

// Schema is the body of an index create request.
type Schema struct {
	Settings map[string]any `json:"settings"`
	Mappings map[string]any `json:"mappings"`
}

// JSON encodes the schema. Map keys are sorted by encoding/json, so identical
// inputs always produce identical bytes.
func (s Schema) JSON() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return data, nil
}

// Properties returns the top level mapping properties.
func (s Schema) Properties() map[string]any {
	props, _ := s.Mappings["properties"].(map[string]any)
	return props
}

// Analyzers returns the analyzers configured in settings.
func (s Schema) Analyzers() map[string]any {
	return s.analysis("analyzer")
}

// Filters returns the token filters configured in settings.
func (s Schema) Filters() map[string]any {
	return s.analysis("filter")
}

func (s Schema) analysis(kind string) map[string]any {
	analysis, _ := s.Settings["analysis"].(map[string]any)
	section, _ := analysis[kind].(map[string]any)
	return section
}

// Build dispatches on entity. docType and decompoundWordList only matter for products.
func Build(entity domain.Entity, docType domain.DocumentType, decompoundWordList string) (Schema, error) {
	switch entity {
	case domain.EntityProducts:
		return BuildProducts(docType, decompoundWordList)
	case domain.EntityProjects:
		return BuildProjects(), nil
	case domain.EntityPersons:
		return BuildPersons(), nil
	case domain.EntityOrganizations:
		return BuildOrganizations(), nil
	}
	return Schema{}, fmt.Errorf("%w: %q", domain.ErrUnknownEntity, entity)
}

func newSchema(analyzers, filters, properties map[string]any) Schema {
	analysis := map[string]any{"analyzer": analyzers}
	if len(filters) > 0 {
		analysis["filter"] = filters
	}
	return Schema{
		Settings: map[string]any{
			"index": map[string]any{
				"number_of_shards":   defaultShards,
				"number_of_replicas": defaultReplicas,
			},
			"analysis": analysis,
		},
		Mappings: map[string]any{"properties": properties},
	}
}

// baseAnalyzers are present on every index.
func baseAnalyzers() map[string]any {
	return map[string]any{
		AnalyzerTrigram: map[string]any{
			"type":      "custom",
			"tokenizer": "standard",
			"filter":    []string{"lowercase", "shingle"},
		},
		AnalyzerFolding: map[string]any{
			"tokenizer": "standard",
			"filter":    []string{"lowercase", "asciifolding"},
		},
	}
}

// textAnalyzers extends baseAnalyzers with the Dutch chain used by product texts.
func textAnalyzers(decompoundWordList string) (map[string]any, map[string]any) {
	analyzers := baseAnalyzers()
	analyzers[AnalyzerDutch] = map[string]any{
		"tokenizer": "standard",
		"filter": []string{
			"lowercase", "dutch_stop", "dutch_keywords", "dutch_override", "dutch_stemmer",
		},
	}
	filters := map[string]any{
		"dutch_stop": map[string]any{"type": "stop", "stopwords": "_dutch_"},
		"shingle": map[string]any{
			"type":             "shingle",
			"min_shingle_size": shingleMinSize,
			"max_shingle_size": shingleMaxSize,
		},
		"dutch_keywords": map[string]any{"type": "keyword_marker", "keywords": []string{"palliatieve"}},
		"dutch_stemmer":  map[string]any{"type": "stemmer", "language": "dutch"},
		"dutch_override": map[string]any{"type": "stemmer_override", "rules": []string{}},
		"dutch_synonym": map[string]any{
			"type":     "synonym_graph",
			"synonyms": []string{"palliatie, palliatieve"},
		},
	}
	if decompoundWordList != "" {
		analyzers[AnalyzerDecompound] = map[string]any{
			"type":      "custom",
			"tokenizer": "standard",
			"filter":    []string{"lowercase", "dutch_stop", "dutch_synonym", FilterDecompound},
		}
		filters[FilterDecompound] = map[string]any{
			"type":           "dictionary_decompounder",
			"word_list_path": decompoundWordList,
			"updateable":     true,
		}
	}
	return analyzers, filters
}

// dutchSearchAnalyzer picks the query time analyzer for Dutch text.
func dutchSearchAnalyzer(decompoundWordList string) string {
	if decompoundWordList != "" {
		return AnalyzerDecompound
	}
	return AnalyzerDutch
}

func keyword() map[string]any { return map[string]any{"type": "keyword"} }

func boolean() map[string]any { return map[string]any{"type": "boolean"} }

func text() map[string]any { return map[string]any{"type": "text"} }

func date() map[string]any { return map[string]any{"type": "date", "format": dateFormat} }

func folded() map[string]any { return map[string]any{"type": "text", "analyzer": AnalyzerFolding} }

// foldedText is a text field with a folding sub field.
func foldedText() map[string]any {
	return map[string]any{"type": "text", "fields": map[string]any{"folded": folded()}}
}

// keywordText is a text field with keyword and folding sub fields.
func keywordText() map[string]any {
	return map[string]any{
		"type": "text",
		"fields": map[string]any{
			"keyword": map[string]any{"type": "keyword", "ignore_above": keywordIgnoreAbove},
			"folded":  folded(),
		},
	}
}

// analyzedText is a text field with a language analyzed and a folding sub field.
// An empty searchAnalyzer leaves query time analysis equal to index time.
func analyzedText(analyzer, searchAnalyzer string) map[string]any {
	analyzed := map[string]any{"type": "text", "analyzer": analyzer}
	if searchAnalyzer != "" {
		analyzed["search_analyzer"] = searchAnalyzer
	}
	return map[string]any{
		"type": "text",
		"fields": map[string]any{
			"analyzed": analyzed,
			"folded":   folded(),
		},
	}
}

// suggestProperties are the completion and did-you-mean fields every entity carries.
func suggestProperties(props map[string]any) {
	props["srn"] = keyword()
	props[CompletionField] = map[string]any{"type": "completion"}
	props[PhraseSuggestField] = map[string]any{"type": "text", "analyzer": AnalyzerTrigram}
}
