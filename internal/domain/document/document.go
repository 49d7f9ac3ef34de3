// Package document holds the typed shapes of documents read from the engine.
//
// Documents are produced by Decode from a hit's _source and are never written
// back. Each concrete type implements Document; the set is closed.
package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/surfedu/searchclient/internal/domain"
)

// Kind selects the shape a hit is decoded into.
type Kind string

// Document kinds.
const (
	KindLearningMaterial Kind = "learning_material"
	KindResearchProduct  Kind = "research_product"
	KindProject          Kind = "project"
	KindPerson           Kind = "person"
	KindOrganization     Kind = "organization"
)

// Entity returns the entity a kind of document belongs to.
func (k Kind) Entity() (domain.Entity, error) {
	switch k {
	case KindLearningMaterial, KindResearchProduct:
		return domain.EntityProducts, nil
	case KindProject:
		return domain.EntityProjects, nil
	case KindPerson:
		return domain.EntityPersons, nil
	case KindOrganization:
		return domain.EntityOrganizations, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownDocumentType, k)
}

// KindForProducts returns the product kind stored for a document type.
func KindForProducts(dt domain.DocumentType) (Kind, error) {
	switch dt {
	case domain.DocumentTypeLearningMaterial:
		return KindLearningMaterial, nil
	case domain.DocumentTypeResearchProduct:
		return KindResearchProduct, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownDocumentType, dt)
}

// Document is any typed search result.
type Document interface {
	Kind() Kind
	// Lookup returns the value of an identifying attribute ("srn" or "external_id").
	Lookup(attribute string) string
	document()
}

// State is the lifecycle state of an indexed entity.
type State string

// Lifecycle states.
const (
	StateActive   State = "active"
	StateInactive State = "inactive"
	StateDeleted  State = "deleted"
	StateSkipped  State = "skipped"
)

// Provider attributes a document to its source system.
// It serializes to the first non-empty of name, slug, ror and external_id.
type Provider struct {
	Name       string `mapstructure:"name"`
	ExternalID string `mapstructure:"external_id"`
	Slug       string `mapstructure:"slug"`
	ROR        string `mapstructure:"ror"`
}

// Display returns the rendered provider value.
func (p Provider) Display() string {
	for _, v := range []string{p.Name, p.Slug, p.ROR, p.ExternalID} {
		if v != "" {
			return v
		}
	}
	return ""
}

// MarshalJSON renders the provider as a single string.
func (p Provider) MarshalJSON() ([]byte, error) {
	if d := p.Display(); d != "" {
		return json.Marshal(d)
	}
	return []byte("null"), nil
}

// Highlight maps a highlight key ("description", "text") to snippets.
type Highlight map[string][]string

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// MarshalJSON renders the date as YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}
