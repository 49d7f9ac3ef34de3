package domain

import "fmt"

// Platform identifies a tenant of the search cluster.
type Platform string

// Supported platforms.
const (
	PlatformEdusources Platform = "edusources"
	PlatformPublinova  Platform = "publinova"
	PlatformMBOData    Platform = "mbodata"
)

// Platforms lists every supported platform.
func Platforms() []Platform {
	return []Platform{PlatformEdusources, PlatformPublinova, PlatformMBOData}
}

// IsValid reports whether p is a supported platform.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformEdusources, PlatformPublinova, PlatformMBOData:
		return true
	}
	return false
}

// ParsePlatform converts a raw string into a Platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

// Entity is a top-level searchable kind.
type Entity string

// Supported entities, in canonical order.
const (
	EntityProducts      Entity = "products"
	EntityProjects      Entity = "projects"
	EntityPersons       Entity = "persons"
	EntityOrganizations Entity = "organizations"
)

// Entities lists every entity in canonical order.
func Entities() []Entity {
	return []Entity{EntityProducts, EntityProjects, EntityPersons, EntityOrganizations}
}

// Rank returns the canonical position of e, or -1 for unknown entities.
func (e Entity) Rank() int {
	for i, known := range Entities() {
		if e == known {
			return i
		}
	}
	return -1
}

// ParseEntity converts a raw string into an Entity.
func ParseEntity(s string) (Entity, error) {
	e := Entity(s)
	if e.Rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntity, s)
	}
	return e, nil
}

// DocumentType specializes products.
type DocumentType string

// Product document types.
const (
	DocumentTypeLearningMaterial DocumentType = "learning_material"
	DocumentTypeResearchProduct  DocumentType = "research_product"
)

// ParseDocumentType converts a raw string into a DocumentType.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case DocumentTypeLearningMaterial, DocumentTypeResearchProduct:
		return DocumentType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDocumentType, s)
}

// DocumentTypeFor returns the product document type a platform indexes.
func DocumentTypeFor(p Platform) DocumentType {
	if p == PlatformPublinova {
		return DocumentTypeResearchProduct
	}
	return DocumentTypeLearningMaterial
}

// Language codes used for multilingual fields and legacy per-language indices.
const (
	LanguageDutch   = "nl"
	LanguageEnglish = "en"
	LanguageUnknown = "unk"
)

// Languages returns the fixed, ordered set of indexed languages.
func Languages() []string {
	return []string{LanguageDutch, LanguageEnglish, LanguageUnknown}
}

// IsLanguage reports whether lang is one of the indexed languages.
func IsLanguage(lang string) bool {
	for _, l := range Languages() {
		if l == lang {
			return true
		}
	}
	return false
}
