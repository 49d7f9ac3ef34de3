package searchclient

import (
	"github.com/surfedu/searchclient/internal/db"
	"github.com/surfedu/searchclient/internal/domain"
)

// Sentinel errors re-exported from the domain and engine layers.
// Use errors.Is() to check.
var (
	ErrUnknownPlatform      = domain.ErrUnknownPlatform
	ErrUnknownEntity        = domain.ErrUnknownEntity
	ErrUnknownPreset        = domain.ErrUnknownPreset
	ErrUnknownDocumentType  = domain.ErrUnknownDocumentType
	ErrIncompatibleMerge    = domain.ErrIncompatibleMerge
	ErrSingleEntityRequired = domain.ErrSingleEntityRequired
	ErrInvalidConfiguration = domain.ErrInvalidConfiguration
	ErrInvalidAlias         = domain.ErrInvalidAlias
	ErrMissingIndex         = domain.ErrMissingIndex
	ErrInvalidDocument      = domain.ErrInvalidDocument
	ErrInvalidRequest       = domain.ErrInvalidRequest
	ErrResultNotFound       = domain.ErrResultNotFound

	ErrIndexNotFound = db.ErrIndexNotFound
	ErrIndexExists   = db.ErrIndexExists
	ErrUnavailable   = db.ErrUnavailable
)
