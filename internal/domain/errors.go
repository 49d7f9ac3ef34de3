package domain

import (
	"errors"
)

var (
	// ErrUnknownPlatform signals a platform outside the supported set.
	ErrUnknownPlatform = errors.New("unknown platform")
	// ErrUnknownEntity signals an entity token that maps to no entity.
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrUnknownPreset signals a preset that is not registered for a platform.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrUnknownDocumentType signals a document type without a schema or serializer.
	ErrUnknownDocumentType = errors.New("unknown document type")
	// ErrIncompatibleMerge signals two configurations that can't be merged.
	ErrIncompatibleMerge = errors.New("incompatible search configurations")
	// ErrSingleEntityRequired signals a call that needs exactly one entity.
	ErrSingleEntityRequired = errors.New("configuration must contain exactly one entity")
	// ErrInvalidConfiguration signals a configuration that fails construction checks.
	ErrInvalidConfiguration = errors.New("invalid search configuration")
	// ErrInvalidAlias signals an index or alias name outside the alias grammar.
	ErrInvalidAlias = errors.New("invalid alias")

	// ErrMissingIndex signals an engine hit without an index identifier.
	ErrMissingIndex = errors.New("search hit did not specify an index")
	// ErrInvalidDocument signals a hit source that fails document validation.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidRequest signals malformed search parameters.
	ErrInvalidRequest = errors.New("invalid search request")
	// ErrResultNotFound signals that there is nothing to explain.
	ErrResultNotFound = errors.New("result not found")
)
