// Package configuration describes which indices a search targets and which
// fields it searches, filters, highlights and compares, per platform and entity.
//
// A Configuration is immutable once built. Combining configurations goes
// through Merged, which returns a new value.
package configuration

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/surfedu/searchclient/internal/domain"
	"github.com/surfedu/searchclient/internal/domain/document"
	"github.com/surfedu/searchclient/internal/domain/fieldref"
)

// Layout is the way entity documents are spread over indices.
type Layout int

const (
	// LayoutEntityIndices stores one index (alias) per entity.
	LayoutEntityIndices Layout = iota
	// LayoutMultilingualIndices stores a single entity in one index per language.
	LayoutMultilingualIndices
)

// ErrLanguageAliases signals a per-entity lookup on language based aliases.
var ErrLanguageAliases = errors.New("language based aliases can't be grouped by entity")

// Params holds the raw inputs of a Configuration.
type Params struct {
	Platform               domain.Platform
	Layout                 Layout
	Entities               []domain.Entity
	SearchFields           []string
	FilterFields           []string
	RangeFilterFields      []string
	Serializers            map[domain.Entity]document.Kind
	DistanceFeatureField   string
	Highlights             map[string][]string
	MoreLikeThisReferences []string
	AliasPrefix            string
}

// Configuration is a validated, immutable search configuration.
type Configuration struct {
	platform             domain.Platform
	layout               Layout
	entities             []domain.Entity
	searchFields         []string
	filterFields         []string
	rangeFilterFields    []string
	serializers          map[domain.Entity]document.Kind
	distanceFeatureField string
	highlights           map[string][]string
	moreLikeThisRefs     []string
	aliasPrefix          string
}

// New validates params and builds a Configuration.
func New(p Params) (Configuration, error) {
	if !p.Platform.IsValid() {
		return Configuration{}, fmt.Errorf("%w: %q", domain.ErrUnknownPlatform, p.Platform)
	}
	if len(p.Entities) == 0 {
		return Configuration{}, fmt.Errorf("%w: at least one entity is required", domain.ErrInvalidConfiguration)
	}
	if p.Layout == LayoutMultilingualIndices && len(p.Entities) != 1 {
		return Configuration{}, fmt.Errorf("%w: multilingual indices hold a single entity",
			domain.ErrInvalidConfiguration)
	}
	entities := make([]domain.Entity, 0, len(p.Entities))
	for _, e := range p.Entities {
		if e.Rank() < 0 {
			return Configuration{}, fmt.Errorf("%w: %q", domain.ErrUnknownEntity, e)
		}
		if _, ok := p.Serializers[e]; !ok {
			return Configuration{}, fmt.Errorf("%w: no serializer for entity %q",
				domain.ErrInvalidConfiguration, e)
		}
		entities = append(entities, e)
	}

	serializers := make(map[domain.Entity]document.Kind, len(p.Serializers))
	for e, k := range p.Serializers {
		serializers[e] = k
	}
	highlights := make(map[string][]string, len(p.Highlights))
	for key, refs := range p.Highlights {
		highlights[key] = sortedSet(refs)
	}

	return Configuration{
		platform:             p.Platform,
		layout:               p.Layout,
		entities:             canonicalEntities(entities),
		searchFields:         slices.Clone(p.SearchFields),
		filterFields:         sortedSet(p.FilterFields),
		rangeFilterFields:    sortedSet(p.RangeFilterFields),
		serializers:          serializers,
		distanceFeatureField: p.DistanceFeatureField,
		highlights:           highlights,
		moreLikeThisRefs:     sortedSet(p.MoreLikeThisReferences),
		aliasPrefix:          p.AliasPrefix,
	}, nil
}

// Platform returns the tenant.
func (c Configuration) Platform() domain.Platform { return c.platform }

// Layout returns the index layout.
func (c Configuration) Layout() Layout { return c.layout }

// Entities returns the entities in canonical order.
func (c Configuration) Entities() []domain.Entity { return slices.Clone(c.entities) }

// SearchFields returns the boosted full-text fields.
func (c Configuration) SearchFields() []string { return slices.Clone(c.searchFields) }

// FilterFields returns the exact-term filter fields, sorted.
func (c Configuration) FilterFields() []string { return slices.Clone(c.filterFields) }

// RangeFilterFields returns the range filter fields, sorted.
func (c Configuration) RangeFilterFields() []string { return slices.Clone(c.rangeFilterFields) }

// DistanceFeatureField returns the recency field, or "" when recency boosting is off.
func (c Configuration) DistanceFeatureField() string { return c.distanceFeatureField }

// MoreLikeThisReferences returns the field references used for similarity queries.
func (c Configuration) MoreLikeThisReferences() []string { return slices.Clone(c.moreLikeThisRefs) }

// AliasPrefix returns the namespace prefix of every alias.
func (c Configuration) AliasPrefix() string { return c.aliasPrefix }

// Highlights returns a copy of the highlight key to field references mapping.
func (c Configuration) Highlights() map[string][]string {
	out := make(map[string][]string, len(c.highlights))
	for k, v := range c.highlights {
		out[k] = slices.Clone(v)
	}
	return out
}

// Serializers returns a copy of the entity to document kind binding.
func (c Configuration) Serializers() map[domain.Entity]document.Kind {
	out := make(map[domain.Entity]document.Kind, len(c.serializers))
	for k, v := range c.serializers {
		out[k] = v
	}
	return out
}

// AllowMultiEntityResults reports whether the configuration can be merged with others.
func (c Configuration) AllowMultiEntityResults() bool {
	return c.layout == LayoutEntityIndices
}

// UseAggregationsOverDrilldowns reports whether facet counts are exposed as "aggregations".
// Older layouts expose them as "drilldowns".
func (c Configuration) UseAggregationsOverDrilldowns() bool {
	return c.layout == LayoutEntityIndices
}

// WithAliasPrefix returns a copy that targets prefixed aliases.
func (c Configuration) WithAliasPrefix(prefix string) Configuration {
	c.aliasPrefix = prefix
	return c
}

func (c Configuration) alias(token string) string {
	if c.aliasPrefix == "" {
		return string(c.platform) + "-" + token
	}
	return c.aliasPrefix + "-" + string(c.platform) + "-" + token
}

// Aliases returns every alias a search should target.
func (c Configuration) Aliases() []string {
	if c.layout == LayoutMultilingualIndices {
		aliases := make([]string, 0, len(domain.Languages()))
		for _, lang := range domain.Languages() {
			aliases = append(aliases, c.alias(lang))
		}
		return aliases
	}
	aliases := make([]string, 0, len(c.entities))
	for _, e := range c.entities {
		aliases = append(aliases, c.alias(string(e)))
	}
	return aliases
}

// AliasesByEntity maps every entity onto its alias.
func (c Configuration) AliasesByEntity() (map[domain.Entity]string, error) {
	if c.layout == LayoutMultilingualIndices {
		return nil, ErrLanguageAliases
	}
	out := make(map[domain.Entity]string, len(c.entities))
	for _, e := range c.entities {
		out[e] = c.alias(string(e))
	}
	return out, nil
}

// AliasesByLanguage maps every language onto the alias holding its documents.
// Only valid for configurations with exactly one entity.
func (c Configuration) AliasesByLanguage() (map[string]string, error) {
	if len(c.entities) != 1 {
		return nil, fmt.Errorf("%w: found %v", domain.ErrSingleEntityRequired, c.entities)
	}
	out := make(map[string]string, len(domain.Languages()))
	for _, lang := range domain.Languages() {
		if c.layout == LayoutMultilingualIndices {
			out[lang] = c.alias(lang)
		} else {
			out[lang] = c.alias(string(c.entities[0]))
		}
	}
	return out, nil
}

// SerializerFromIndex returns the document kind stored in an index or alias.
func (c Configuration) SerializerFromIndex(index string) (document.Kind, error) {
	if c.layout == LayoutMultilingualIndices {
		if len(c.entities) != 1 {
			return "", fmt.Errorf("%w: found %v", domain.ErrSingleEntityRequired, c.entities)
		}
		return c.serializers[c.entities[0]], nil
	}
	alias, err := ParseAlias(index)
	if err != nil {
		return "", err
	}
	entity, err := domain.ParseEntity(alias.Name)
	if err != nil {
		return "", fmt.Errorf("index %q: %w", index, err)
	}
	kind, ok := c.serializers[entity]
	if !ok {
		return "", fmt.Errorf("index %q: %w: %q is not configured", index, domain.ErrUnknownEntity, entity)
	}
	return kind, nil
}

// ValidFilterFields returns the union of exact and range filter fields, sorted.
func (c Configuration) ValidFilterFields() []string {
	return sortedSet(append(slices.Clone(c.filterFields), c.rangeFilterFields...))
}

// IsRangeField reports whether field is filtered with a range clause.
func (c Configuration) IsRangeField(field string) bool {
	_, found := slices.BinarySearch(c.rangeFilterFields, field)
	return found
}

// HighlightFields returns the concrete fields to request snippets for.
func (c Configuration) HighlightFields() []string {
	keys := make([]string, 0, len(c.highlights))
	for k := range c.highlights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var fields []string
	for _, k := range keys {
		fields = append(fields, fieldref.Interpolate(c.highlights[k]...)...)
	}
	return fields
}

// HighlightKey maps a concrete highlighted field back onto its highlight key.
func (c Configuration) HighlightKey(field string) (string, bool) {
	ref := fieldref.Reference(field)
	keys := make([]string, 0, len(c.highlights))
	for k := range c.highlights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if slices.Contains(c.highlights[k], ref) {
			return k, true
		}
	}
	return "", false
}

func canonicalEntities(entities []domain.Entity) []domain.Entity {
	out := slices.Clone(entities)
	slices.SortFunc(out, func(a, b domain.Entity) int { return a.Rank() - b.Rank() })
	return slices.Compact(out)
}

func sortedSet(items []string) []string {
	out := slices.Clone(items)
	sort.Strings(out)
	return slices.Compact(out)
}
