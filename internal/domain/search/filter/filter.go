// Package filter holds the caller facing filter shape of a search.
package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/surfedu/searchclient/internal/domain"
)

// LanguageField is the filter that selects language indices in the multilingual layout.
const LanguageField = "language.keyword"

// Filter restricts a search to documents whose field holds one of the items.
// For range fields Items holds exactly two bounds, lower and upper.
// An empty bound is unset.
type Filter struct {
	FieldID string   `json:"field_id"`
	Items   []string `json:"items"`
}

// New creates a filter.
func New(fieldID string, items ...string) Filter {
	return Filter{FieldID: fieldID, Items: items}
}

// NewRange creates a range filter. Pass "" for an open bound.
func NewRange(fieldID, lower, upper string) Filter {
	return Filter{FieldID: fieldID, Items: []string{lower, upper}}
}

// IsEmpty reports whether the filter has no items and should be skipped.
func (f Filter) IsEmpty() bool { return len(f.Items) == 0 }

// IsLanguage reports whether the filter targets a language field.
func (f Filter) IsLanguage() bool { return strings.Contains(f.FieldID, "language") }

// Bounds returns the range bounds of the filter.
func (f Filter) Bounds() (lower, upper string, err error) {
	if len(f.Items) != 2 {
		return "", "", fmt.Errorf("%w: range filter %q needs a lower and upper bound, got %d items",
			domain.ErrInvalidRequest, f.FieldID, len(f.Items))
	}
	return f.Items[0], f.Items[1], nil
}

// UnmarshalJSON accepts both "field_id" and the older "external_id" key.
// Null items decode as unset bounds.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var raw struct {
		FieldID    string    `json:"field_id"`
		ExternalID string    `json:"external_id"`
		Items      []*string `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.FieldID = raw.FieldID
	if f.FieldID == "" {
		f.FieldID = raw.ExternalID
	}
	if f.FieldID == "" {
		return fmt.Errorf("%w: filter without field_id", domain.ErrInvalidRequest)
	}
	f.Items = make([]string, 0, len(raw.Items))
	for _, item := range raw.Items {
		if item == nil {
			f.Items = append(f.Items, "")
			continue
		}
		f.Items = append(f.Items, *item)
	}
	return nil
}

// Without returns the filters that don't target fieldID.
func Without(filters []Filter, fieldID string) []Filter {
	out := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f.FieldID != fieldID {
			out = append(out, f)
		}
	}
	return out
}

// Find returns the first filter on fieldID.
func Find(filters []Filter, fieldID string) (Filter, bool) {
	for _, f := range filters {
		if f.FieldID == fieldID {
			return f, true
		}
	}
	return Filter{}, false
}
