package search

import (
	"strings"

	"github.com/surfedu/searchclient/internal/domain/configuration"
	"github.com/surfedu/searchclient/internal/domain/search/filter"
	"github.com/surfedu/searchclient/internal/domain/search/request"
	"github.com/surfedu/searchclient/internal/schema"
)

// Query tuning shared by every search body.
const (
	aggregationSize     = 2000
	autocompleteSize    = 100
	highlightFragments  = 1
	highlightFragSize   = 120
	recencyPivot        = "90d"
	recencyOrigin       = "now"
	recencyBoost        = 1.15
	suggestionGramSize  = 3
	moreLikeThisMinFreq = 1
	moreLikeThisMaxTerm = 12
	didYouMeanKey       = "did-you-mean-suggestion"
	autocompleteKey     = "autocomplete"
	authorNameField     = "authors.name.keyword"
)

// queryBuilder turns requests into query DSL bodies for one configuration.
type queryBuilder struct {
	cfg configuration.Configuration
}

// search returns the indices and body of a full text search.
func (b queryBuilder) search(req *request.Request) ([]string, map[string]any, error) {
	boolQuery := map[string]any{}
	body := map[string]any{
		"min_score":   req.MinScore(),
		"from":        req.From(),
		"size":        req.PageSize(),
		"highlight":   b.highlight(),
		"query":       map[string]any{"bool": boolQuery},
		"post_filter": map[string]any{"bool": map[string]any{}},
	}

	if text := req.Text(); text != "" {
		boolQuery["must"] = []any{b.simpleQueryString(text)}
		if recency := b.distanceFeature(); recency != nil {
			boolQuery["should"] = recency
		}
		body["suggest"] = map[string]any{
			didYouMeanKey: map[string]any{
				"text": text,
				"phrase": map[string]any{
					"field":     schema.PhraseSuggestField,
					"size":      1,
					"gram_size": suggestionGramSize,
					"direct_generator": []any{
						map[string]any{"field": schema.PhraseSuggestField, "suggest_mode": "always"},
					},
				},
			},
		}
	}

	indices := b.indices(req.Filters())

	if req.Aggregate() {
		aggs, err := b.aggregations(req.DrilldownNames(), req.Filters())
		if err != nil {
			return nil, nil, err
		}
		body["aggs"] = aggs
	}

	clauses, err := b.filters(req.Filters())
	if err != nil {
		return nil, nil, err
	}
	if len(clauses) > 0 {
		body["post_filter"] = map[string]any{"bool": map[string]any{"must": clauses}}
	}

	if field, direction := req.Order(); field != "" {
		body["sort"] = []any{
			map[string]any{field: map[string]any{"order": direction}},
			"_score",
		}
	}
	return indices, body, nil
}

func (b queryBuilder) simpleQueryString(text string) map[string]any {
	return map[string]any{
		"simple_query_string": map[string]any{
			"fields":           b.cfg.SearchFields(),
			"query":            text,
			"default_operator": "and",
		},
	}
}

// distanceFeature boosts recent documents. Nil when no date field is configured.
func (b queryBuilder) distanceFeature() map[string]any {
	field := b.cfg.DistanceFeatureField()
	if field == "" {
		return nil
	}
	return map[string]any{
		"distance_feature": map[string]any{
			"field":  field,
			"pivot":  recencyPivot,
			"origin": recencyOrigin,
			"boost":  recencyBoost,
		},
	}
}

func (b queryBuilder) highlight() map[string]any {
	fields := map[string]any{}
	for _, f := range b.cfg.HighlightFields() {
		fields[f] = map[string]any{}
	}
	return map[string]any{
		"number_of_fragments": highlightFragments,
		"fragment_size":       highlightFragSize,
		"fields":              fields,
	}
}

// indices selects the aliases to search. With per-language indices a language
// filter narrows the search to the requested languages.
func (b queryBuilder) indices(filters []filter.Filter) []string {
	aliases := b.cfg.Aliases()
	if b.cfg.Layout() != configuration.LayoutMultilingualIndices {
		return aliases
	}
	language, ok := filter.Find(filters, filter.LanguageField)
	if !ok {
		return aliases
	}
	byLanguage, err := b.cfg.AliasesByLanguage()
	if err != nil {
		return aliases
	}
	var selected []string
	for _, lang := range language.Items {
		if alias, ok := byLanguage[lang]; ok {
			selected = append(selected, alias)
		}
	}
	if len(selected) == 0 {
		return aliases
	}
	return selected
}

// filters translates caller filters into engine clauses. Empty filters are skipped
// and so are language filters when languages live in separate indices.
func (b queryBuilder) filters(filters []filter.Filter) ([]any, error) {
	multilingual := b.cfg.Layout() == configuration.LayoutMultilingualIndices
	clauses := make([]any, 0, len(filters))
	for _, f := range filters {
		if f.IsEmpty() {
			continue
		}
		if multilingual && f.IsLanguage() {
			continue
		}
		if !b.cfg.IsRangeField(f.FieldID) {
			clauses = append(clauses, map[string]any{"terms": map[string]any{f.FieldID: f.Items}})
			continue
		}
		lower, upper, err := f.Bounds()
		if err != nil {
			return nil, err
		}
		if lower == "" && upper == "" {
			continue
		}
		clauses = append(clauses, map[string]any{
			"range": map[string]any{
				f.FieldID: map[string]any{"gte": bound(lower), "lte": bound(upper)},
			},
		})
	}
	return clauses, nil
}

// bound renders an unset range bound as null.
func bound(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// aggregations counts values per field. Every count respects the filters on
// the other fields but ignores the filter on its own field.
func (b queryBuilder) aggregations(names []string, filters []filter.Filter) (map[string]any, error) {
	if len(names) == 0 {
		names = b.cfg.FilterFields()
	}
	aggs := make(map[string]any, len(names))
	for _, name := range names {
		terms := map[string]any{"terms": map[string]any{"field": name, "size": aggregationSize}}
		others, err := b.filters(filter.Without(filters, name))
		if err != nil {
			return nil, err
		}
		if len(others) == 0 {
			aggs[name] = terms
			continue
		}
		aggs[name] = map[string]any{
			"filter": map[string]any{"bool": map[string]any{"must": others}},
			"aggs":   map[string]any{"filtered": terms},
		}
	}
	return aggs, nil
}

func (b queryBuilder) autocomplete(text string) map[string]any {
	return map[string]any{
		"suggest": map[string]any{
			autocompleteKey: map[string]any{
				"text": text,
				"completion": map[string]any{
					"field": schema.CompletionField,
					"size":  autocompleteSize,
				},
			},
		},
	}
}

func (b queryBuilder) lookup(lookup *request.Lookup, ids []string) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{"terms": map[string]any{string(lookup.IDField()): ids}},
				},
			},
		},
		"from": lookup.From(),
		"size": lookup.PageSize(),
	}
}

func (b queryBuilder) moreLikeThis(fields []string, index, srn string) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"more_like_this": map[string]any{
				"fields":          fields,
				"like":            []any{map[string]any{"_index": index, "_id": srn}},
				"min_term_freq":   moreLikeThisMinFreq,
				"max_query_terms": moreLikeThisMaxTerm,
			},
		},
	}
}

// authorSuggestions finds documents about an author that the author didn't write.
func (b queryBuilder) authorSuggestions(name string) map[string]any {
	var fields []string
	for _, f := range b.cfg.SearchFields() {
		if !strings.Contains(f, "authors") {
			fields = append(fields, f)
		}
	}
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{"fields": fields, "query": name},
				},
				"must_not": map[string]any{
					"match": map[string]any{authorNameField: name},
				},
			},
		},
	}
}

// explain scores a single document for text with the regular search clauses.
func (b queryBuilder) explain(srn, text string) map[string]any {
	boolQuery := map[string]any{
		"must":   []any{b.simpleQueryString(text)},
		"filter": []any{map[string]any{"terms": map[string]any{"_id": []string{srn}}}},
	}
	if recency := b.distanceFeature(); recency != nil {
		boolQuery["should"] = recency
	}
	return map[string]any{
		"explain": true,
		"size":    1,
		"query":   map[string]any{"bool": boolQuery},
	}
}
