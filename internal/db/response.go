package db

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cast"

	"github.com/surfedu/searchclient/internal/domain/search/explain"
)

// SearchResponse is the subset of a search reply the client reads.
type SearchResponse struct {
	Hits         Hits                    `json:"hits"`
	Aggregations map[string]Aggregation  `json:"aggregations,omitempty"`
	Suggest      map[string][]Suggestion `json:"suggest,omitempty"`
}

// Hits holds the matched documents of a search.
type Hits struct {
	Total Total `json:"total"`
	Hits  []Hit `json:"hits"`
}

// Total is the hit count. Relation "gte" marks a lower bound.
type Total struct {
	Value    int    `json:"value"`
	Relation string `json:"relation"`
}

// UnmarshalJSON accepts both the object form and the bare number some
// engine versions return.
func (t *Total) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decode hits total: %w", err)
		}
		*t = Total{Value: n, Relation: "eq"}
		return nil
	}
	type plain Total
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode hits total: %w", err)
	}
	*t = Total(p)
	return nil
}

// Hit is a single matched document.
type Hit struct {
	Index       string              `json:"_index"`
	ID          string              `json:"_id"`
	Score       *float64            `json:"_score"`
	Source      map[string]any      `json:"_source"`
	Highlight   map[string][]string `json:"highlight,omitempty"`
	Explanation *explain.Node       `json:"_explanation,omitempty"`
}

// Aggregation is a terms aggregation, optionally nested under a filter
// aggregation as "filtered".
type Aggregation struct {
	Buckets  []Bucket     `json:"buckets,omitempty"`
	Filtered *Aggregation `json:"filtered,omitempty"`
}

// TermBuckets returns the buckets, unwrapping a filtered aggregation.
func (a Aggregation) TermBuckets() []Bucket {
	if a.Filtered != nil {
		return a.Filtered.Buckets
	}
	return a.Buckets
}

// Bucket is one value of a terms aggregation.
type Bucket struct {
	Key      any `json:"key"`
	DocCount int `json:"doc_count"`
}

// KeyString renders the bucket key. Numeric keys render without exponent.
func (b Bucket) KeyString() string {
	return cast.ToString(b.Key)
}

// Suggestion is the suggester output for one piece of input text.
type Suggestion struct {
	Text    string             `json:"text"`
	Options []SuggestionOption `json:"options"`
}

// SuggestionOption is a single suggestion.
type SuggestionOption struct {
	Text   string         `json:"text"`
	Score  float64        `json:"score"`
	Source map[string]any `json:"_source,omitempty"`
}

// DecodeSearchResponse reads a search reply.
func DecodeSearchResponse(r io.Reader) (*SearchResponse, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var resp SearchResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &resp, nil
}

// DecodeCount reads a count reply.
func DecodeCount(r io.Reader) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	return resp.Count, nil
}

// DecodeError builds a ResponseError from an error reply.
// Bodies that don't carry an error object still yield the status.
func DecodeError(status int, r io.Reader) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return &ResponseError{Status: status}
	}
	var reply struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &reply); err != nil || len(reply.Error) == 0 {
		return &ResponseError{Status: status}
	}
	var detail struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(reply.Error, &detail); err != nil {
		// some replies carry the error as a plain string
		var reason string
		_ = json.Unmarshal(reply.Error, &reason)
		return &ResponseError{Status: status, Reason: reason}
	}
	return &ResponseError{Status: status, Type: detail.Type, Reason: detail.Reason}
}
