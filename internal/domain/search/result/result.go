// Package result holds the caller facing shapes of search responses.
package result

import (
	"encoding/json"

	"github.com/surfedu/searchclient/internal/domain/document"
)

// Count keys of a search result.
const (
	KeyAggregations = "aggregations"
	// KeyDrilldowns is the legacy name of the facet counts.
	KeyDrilldowns = "drilldowns"
)

// Total is the number of matching documents. The engine reports a lower bound
// above its tracking threshold, in which case IsPrecise is false.
type Total struct {
	Value     int  `json:"value"`
	IsPrecise bool `json:"is_precise"`
}

// NewTotal converts an engine total. Relation "gte" marks a lower bound.
func NewTotal(value int, relation string) Total {
	return Total{Value: value, IsPrecise: relation != "gte"}
}

// PreciseTotal returns an exact total computed by the client.
func PreciseTotal(value int) Total {
	return Total{Value: value, IsPrecise: true}
}

// Page is a list of documents with their total.
type Page struct {
	Total   Total               `json:"results_total"`
	Results []document.Document `json:"results"`
}

// EmptyPage returns a page without documents and a precise zero total.
func EmptyPage() Page {
	return Page{Total: PreciseTotal(0), Results: []document.Document{}}
}

// DidYouMean is a spelling suggestion for the search text.
type DidYouMean struct {
	Original   string `json:"original"`
	Suggestion string `json:"suggestion"`
}

// SearchResult is a page of documents with facet counts and a spelling suggestion.
type SearchResult struct {
	Page
	// Counts maps "{field}-{value}" onto the number of documents.
	Counts map[string]int
	// CountsKey is the response key of Counts, KeyAggregations or KeyDrilldowns.
	CountsKey  string
	DidYouMean *DidYouMean
}

// Stripped returns the result without documents and with a precise zero total.
// Facet counts and suggestions are kept.
func (r SearchResult) Stripped() SearchResult {
	r.Page = EmptyPage()
	return r
}

// MarshalJSON writes the counts under their configured key and an empty
// object when there is no spelling suggestion.
func (r SearchResult) MarshalJSON() ([]byte, error) {
	key := r.CountsKey
	if key == "" {
		key = KeyAggregations
	}
	counts := r.Counts
	if counts == nil {
		counts = map[string]int{}
	}
	results := r.Results
	if results == nil {
		results = []document.Document{}
	}
	var didYouMean any = struct{}{}
	if r.DidYouMean != nil {
		didYouMean = r.DidYouMean
	}
	return json.Marshal(map[string]any{
		"results_total": r.Total,
		"results":       results,
		key:             counts,
		"did_you_mean":  didYouMean,
	})
}

// Stats holds document counts. ByEntity is nil for configurations that
// only support a single count.
type Stats struct {
	Total    int
	ByEntity map[string]int
}

// DocumentsKey holds the total in a per entity breakdown.
const DocumentsKey = "documents"

// MarshalJSON writes a bare number or the per entity breakdown with its total.
func (s Stats) MarshalJSON() ([]byte, error) {
	if s.ByEntity == nil {
		return json.Marshal(s.Total)
	}
	out := make(map[string]int, len(s.ByEntity)+1)
	for k, v := range s.ByEntity {
		out[k] = v
	}
	out[DocumentsKey] = s.Total
	return json.Marshal(out)
}
