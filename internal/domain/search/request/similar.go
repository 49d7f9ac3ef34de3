package request

import (
	"fmt"

	"github.com/surfedu/searchclient/internal/domain"
)

// IDField selects the attribute documents are looked up by.
type IDField string

const (
	// IDFieldExternal matches on the source system identifier.
	IDFieldExternal IDField = "external_id"
	// IDFieldSRN matches on the engine document id, which is the srn.
	IDFieldSRN IDField = "_id"
)

// Attribute returns the document attribute holding the identifier.
func (f IDField) Attribute() string {
	if f == IDFieldSRN {
		return "srn"
	}
	return string(f)
}

// Lookup is a validated request for documents by identifier.
type Lookup struct {
	ids      []string
	idField  IDField
	page     int
	pageSize int
}

// DefaultLookupPageSize is the page size of identifier lookups.
const DefaultLookupPageSize = 10

// NewLookup validates and normalizes lookup parameters.
func NewLookup(ids []string, idField IDField, page, pageSize int) (Lookup, error) {
	if idField == "" {
		idField = IDFieldExternal
	}
	if idField != IDFieldExternal && idField != IDFieldSRN {
		return Lookup{}, fmt.Errorf("%w: unsupported id field %q", domain.ErrInvalidRequest, idField)
	}
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultLookupPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Lookup{ids: append([]string(nil), ids...), idField: idField, page: page, pageSize: pageSize}, nil
}

// IDs returns the requested identifiers in caller order.
func (l *Lookup) IDs() []string { return l.ids }

// IDField returns the field the identifiers are matched on.
func (l *Lookup) IDField() IDField { return l.idField }

// From returns the offset of the first result.
func (l *Lookup) From() int { return l.pageSize * (l.page - 1) }

// PageSize returns the number of results per page.
func (l *Lookup) PageSize() int { return l.pageSize }

// Similar is a validated "more like this" request.
type Similar struct {
	identifier string
	language   string
	external   bool
}

// NewSimilar validates similar request parameters. External identifiers are
// resolved to an srn before the similarity query runs.
func NewSimilar(identifier, language string, external bool) (Similar, error) {
	if identifier == "" {
		return Similar{}, fmt.Errorf("%w: identifier is required", domain.ErrInvalidRequest)
	}
	return Similar{identifier: identifier, language: language, external: external}, nil
}

// Identifier returns the seed document identifier.
func (r *Similar) Identifier() string { return r.identifier }

// Language returns the requested language.
func (r *Similar) Language() string { return r.language }

// IsExternal reports whether Identifier is an external id instead of an srn.
func (r *Similar) IsExternal() bool { return r.external }
