package configuration

import (
	"fmt"
	"slices"

	"github.com/surfedu/searchclient/internal/domain"
	"github.com/surfedu/searchclient/internal/domain/document"
)

// MergeError explains why two configurations could not be merged.
type MergeError struct {
	Reason string
}

func (e *MergeError) Error() string {
	return domain.ErrIncompatibleMerge.Error() + ": " + e.Reason
}

func (e *MergeError) Unwrap() error { return domain.ErrIncompatibleMerge }

// Merged combines two configurations into a new one.
//
// Entities, serializers, range filter fields, highlights and more-like-this
// references are united; search fields are concatenated; exact filter fields are
// intersected. The distance feature field is kept only when both agree.
// The alias prefix of a wins when set.
func Merged(a, b Configuration) (Configuration, error) {
	if a.platform != b.platform {
		return Configuration{}, &MergeError{
			Reason: fmt.Sprintf("platforms %q and %q differ", a.platform, b.platform),
		}
	}
	if !a.AllowMultiEntityResults() || !b.AllowMultiEntityResults() {
		return Configuration{}, &MergeError{Reason: "configuration doesn't allow multi entity results"}
	}
	for _, e := range a.entities {
		if slices.Contains(b.entities, e) {
			return Configuration{}, &MergeError{Reason: fmt.Sprintf("overlapping entity %q", e)}
		}
	}
	for e := range a.serializers {
		if _, ok := b.serializers[e]; ok {
			return Configuration{}, &MergeError{Reason: fmt.Sprintf("overlapping serializer for entity %q", e)}
		}
	}

	serializers := make(map[domain.Entity]document.Kind, len(a.serializers)+len(b.serializers))
	for e, k := range a.serializers {
		serializers[e] = k
	}
	for e, k := range b.serializers {
		serializers[e] = k
	}

	highlights := a.Highlights()
	for key, refs := range b.highlights {
		highlights[key] = sortedSet(append(highlights[key], refs...))
	}

	var filterFields []string
	for _, f := range a.filterFields {
		if slices.Contains(b.filterFields, f) {
			filterFields = append(filterFields, f)
		}
	}

	distanceFeatureField := a.distanceFeatureField
	if a.distanceFeatureField != b.distanceFeatureField {
		distanceFeatureField = ""
	}

	prefix := a.aliasPrefix
	if prefix == "" {
		prefix = b.aliasPrefix
	}

	return Configuration{
		platform:             a.platform,
		layout:               LayoutEntityIndices,
		entities:             canonicalEntities(append(slices.Clone(a.entities), b.entities...)),
		searchFields:         append(slices.Clone(a.searchFields), b.searchFields...),
		filterFields:         filterFields,
		rangeFilterFields:    sortedSet(append(slices.Clone(a.rangeFilterFields), b.rangeFilterFields...)),
		serializers:          serializers,
		distanceFeatureField: distanceFeatureField,
		highlights:           highlights,
		moreLikeThisRefs:     sortedSet(append(slices.Clone(a.moreLikeThisRefs), b.moreLikeThisRefs...)),
		aliasPrefix:          prefix,
	}, nil
}
