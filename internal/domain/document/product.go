package document

import (
	"strings"
	"time"
)

// Product fields shared by learning materials and research products.
type Product struct {
	SRN           string     `mapstructure:"srn" json:"srn" validate:"required"`
	Set           string     `mapstructure:"set" json:"set" validate:"required"`
	ExternalID    string     `mapstructure:"external_id" json:"external_id" validate:"required"`
	State         State      `mapstructure:"state" json:"state" validate:"oneof=active inactive deleted skipped"`
	Provider      *Provider  `mapstructure:"provider" json:"provider"`
	Score         float64    `mapstructure:"score" json:"score"`
	PublishedAt   *time.Time `mapstructure:"published_at" json:"published_at"`
	ModifiedAt    *Date      `mapstructure:"modified_at" json:"modified_at"`
	URL           string     `mapstructure:"url" json:"url" validate:"required,url"`
	Title         string     `mapstructure:"title" json:"title" validate:"required"`
	Description   string     `mapstructure:"description" json:"description"`
	Language      string     `mapstructure:"language" json:"language"`
	Copyright     string     `mapstructure:"copyright" json:"copyright"`
	Video         *Video     `mapstructure:"video" json:"video"`
	HarvestSource string     `mapstructure:"harvest_source" json:"harvest_source"`
	Previews      *Previews  `mapstructure:"previews" json:"previews"`
	Files         []File     `mapstructure:"files" json:"files" validate:"dive"`
	Authors       []Author   `mapstructure:"authors" json:"authors" validate:"dive"`
	HasParts      []string   `mapstructure:"has_parts" json:"has_parts"`
	IsPartOf      []string   `mapstructure:"is_part_of" json:"is_part_of"`
	Keywords      []string   `mapstructure:"keywords" json:"keywords"`
	DOI           string     `mapstructure:"doi" json:"doi,omitempty"`
	Subtitle      string     `mapstructure:"subtitle" json:"subtitle,omitempty"`
	Highlight     Highlight  `mapstructure:"highlight" json:"highlight"`
}

// Lookup implements Document.
func (p *Product) Lookup(attribute string) string {
	switch attribute {
	case "srn":
		return p.SRN
	case "external_id":
		return p.ExternalID
	}
	return ""
}

func (p *Product) document() {}

func (p *Product) fillDefaults() {
	if p.State == "" {
		p.State = StateActive
	}
	p.Files = nonNil(p.Files)
	p.Authors = nonNil(p.Authors)
	p.HasParts = nonNil(p.HasParts)
	p.IsPartOf = nonNil(p.IsPartOf)
	p.Keywords = nonNil(p.Keywords)
	for i := range p.Files {
		p.Files[i].fillDefaults()
	}
}

// LearningMaterial is a product on an education platform.
type LearningMaterial struct {
	Product `mapstructure:",squash"`

	EducationalLevels []string `mapstructure:"lom_educational_levels" json:"lom_educational_levels"`
	Disciplines       []string `mapstructure:"disciplines" json:"disciplines"`
	StudyVocabulary   []string `mapstructure:"study_vocabulary" json:"study_vocabulary"`
	TechnicalType     string   `mapstructure:"technical_type" json:"technical_type,omitempty"`
	MaterialTypes     []string `mapstructure:"material_types" json:"material_types"`
	AggregationLevel  string   `mapstructure:"aggregation_level" json:"aggregation_level,omitempty"`
	Publishers        []string `mapstructure:"publishers" json:"publishers"`
	Consortium        string   `mapstructure:"consortium" json:"consortium,omitempty"`
}

// Kind implements Document.
func (*LearningMaterial) Kind() Kind { return KindLearningMaterial }

func (m *LearningMaterial) finalize() {
	m.fillDefaults()
	m.EducationalLevels = nonNil(m.EducationalLevels)
	m.Disciplines = nonNil(m.Disciplines)
	m.StudyVocabulary = nonNil(m.StudyVocabulary)
	m.MaterialTypes = nonNil(m.MaterialTypes)
	m.Publishers = nonNil(m.Publishers)
}

// ResearchProduct is a product on a research platform.
type ResearchProduct struct {
	Product `mapstructure:",squash"`

	Type               string   `mapstructure:"type" json:"type" validate:"required"`
	ResearchObjectType string   `mapstructure:"research_object_type" json:"research_object_type,omitempty"`
	Parties            []string `mapstructure:"parties" json:"parties"`
	ResearchThemes     []string `mapstructure:"research_themes" json:"research_themes"`
	Projects           []string `mapstructure:"projects" json:"projects"`

	Owners   []Author `mapstructure:"-" json:"owners"`
	Contacts []Author `mapstructure:"-" json:"contacts"`
}

// Kind implements Document.
func (*ResearchProduct) Kind() Kind { return KindResearchProduct }

// DOIPrefix turns a bare DOI into a resolvable URL.
const DOIPrefix = "https://doi.org/"

func (r *ResearchProduct) finalize() {
	r.fillDefaults()
	r.Parties = nonNil(r.Parties)
	r.ResearchThemes = nonNil(r.ResearchThemes)
	r.Projects = nonNil(r.Projects)

	r.Owners = firstAuthor(r.Authors)
	r.Contacts = firstAuthor(r.Authors)
	if r.DOI != "" && !strings.HasPrefix(r.DOI, DOIPrefix) {
		r.DOI = DOIPrefix + r.DOI
	}
	if r.Subtitle != "" && strings.Contains(r.Title, r.Subtitle) {
		r.Subtitle = ""
	}
}

func firstAuthor(authors []Author) []Author {
	if len(authors) == 0 {
		return []Author{}
	}
	return []Author{authors[0]}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
