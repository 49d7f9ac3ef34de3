// Package fieldref translates between abstract multilingual field references
// ("texts:titles") and the concrete per-language engine fields they stand for
// ("texts.nl.titles.text", "texts.en.titles.text", "texts.unk.titles.text").
package fieldref

import (
	"sort"
	"strings"

	"github.com/surfedu/searchclient/internal/domain"
)

// Marker prefixes a multilingual field reference.
const Marker = "texts:"

const (
	root      = "texts"
	textField = "text"
)

// Interpolate expands multilingual references into concrete fields.
// References without the marker pass through. Input order is kept and
// languages follow domain.Languages.
func Interpolate(references ...string) []string {
	fields := make([]string, 0, len(references))
	for _, ref := range references {
		name, ok := strings.CutPrefix(ref, Marker)
		if !ok {
			fields = append(fields, ref)
			continue
		}
		for _, lang := range domain.Languages() {
			fields = append(fields, root+"."+lang+"."+name+"."+textField)
		}
	}
	return fields
}

// Extrapolate collapses concrete multilingual fields back into references.
// Sub fields like ".analyzed" or ".folded" collapse onto the same reference.
// The result is deduplicated and sorted.
func Extrapolate(fields ...string) []string {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		seen[Reference(field)] = struct{}{}
	}
	refs := make([]string, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// Reference returns the abstract reference for a single concrete field.
func Reference(field string) string {
	parts := strings.Split(field, ".")
	if len(parts) < 4 || parts[0] != root || !domain.IsLanguage(parts[1]) || parts[3] != textField {
		return field
	}
	return Marker + parts[2]
}
