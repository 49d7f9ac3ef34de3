package search

import (
	"fmt"
	"sort"

	"github.com/surfedu/searchclient/internal/db"
	"github.com/surfedu/searchclient/internal/domain"
	"github.com/surfedu/searchclient/internal/domain/document"
	"github.com/surfedu/searchclient/internal/domain/search/result"
)

// minSuggestionScore is the lowest phrase suggester score worth showing.
const minSuggestionScore = 0.01

// defaultHitScore is used when the engine didn't score a hit, e.g. on sorted searches.
const defaultHitScore = 1.0

// parseSearchResult converts a search reply into documents, facet counts and a
// spelling suggestion.
func (s *Service) parseSearchResult(resp *db.SearchResponse) (result.SearchResult, error) {
	docs, err := s.parseHits(resp.Hits.Hits)
	if err != nil {
		return result.SearchResult{}, err
	}

	counts := make(map[string]int)
	for name, agg := range resp.Aggregations {
		for _, bucket := range agg.TermBuckets() {
			counts[name+"-"+bucket.KeyString()] = bucket.DocCount
		}
	}
	countsKey := result.KeyDrilldowns
	if s.cfg.UseAggregationsOverDrilldowns() {
		countsKey = result.KeyAggregations
	}

	return result.SearchResult{
		Page: result.Page{
			Total:   result.NewTotal(resp.Hits.Total.Value, resp.Hits.Total.Relation),
			Results: docs,
		},
		Counts:     counts,
		CountsKey:  countsKey,
		DidYouMean: parseDidYouMean(resp.Suggest),
	}, nil
}

// parsePage converts a reply without facets or suggestions.
func (s *Service) parsePage(resp *db.SearchResponse) (result.Page, error) {
	docs, err := s.parseHits(resp.Hits.Hits)
	if err != nil {
		return result.Page{}, err
	}
	return result.Page{
		Total:   result.NewTotal(resp.Hits.Total.Value, resp.Hits.Total.Relation),
		Results: docs,
	}, nil
}

func (s *Service) parseHits(hits []db.Hit) ([]document.Document, error) {
	docs := make([]document.Document, 0, len(hits))
	for i := range hits {
		doc, err := s.parseSearchHit(&hits[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// parseSearchHit decodes a hit with the serializer of the index it came from.
func (s *Service) parseSearchHit(hit *db.Hit) (document.Document, error) {
	if hit.Index == "" {
		return nil, domain.ErrMissingIndex
	}
	kind, err := s.cfg.SerializerFromIndex(hit.Index)
	if err != nil {
		return nil, fmt.Errorf("resolve serializer: %w", err)
	}

	source := make(map[string]any, len(hit.Source)+2)
	for k, v := range hit.Source {
		source[k] = v
	}
	source["score"] = defaultHitScore
	if hit.Score != nil {
		source["score"] = *hit.Score
	}
	if highlight := s.parseHighlight(hit.Highlight); highlight != nil {
		source["highlight"] = map[string][]string(highlight)
	}

	doc, err := document.Decode(kind, source)
	if err != nil {
		return nil, fmt.Errorf("hit %s: %w", hit.ID, err)
	}
	return doc, nil
}

// parseHighlight groups snippets of concrete fields under their highlight keys.
// Fields outside the configured highlights are dropped.
func (s *Service) parseHighlight(highlight map[string][]string) document.Highlight {
	if len(highlight) == 0 {
		return nil
	}
	fields := make([]string, 0, len(highlight))
	for f := range highlight {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make(document.Highlight)
	for _, f := range fields {
		key, ok := s.cfg.HighlightKey(f)
		if !ok {
			continue
		}
		out[key] = append(out[key], highlight[f]...)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseDidYouMean(suggest map[string][]db.Suggestion) *result.DidYouMean {
	suggestions := suggest[didYouMeanKey]
	if len(suggestions) == 0 || len(suggestions[0].Options) == 0 {
		return nil
	}
	option := suggestions[0].Options[0]
	if option.Score < minSuggestionScore {
		return nil
	}
	return &result.DidYouMean{Original: suggestions[0].Text, Suggestion: option.Text}
}
