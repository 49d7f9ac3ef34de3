package document

import "time"

// ProjectStatus is the progress of a research project.
type ProjectStatus string

// Project statuses.
const (
	ProjectFinished ProjectStatus = "finished"
	ProjectOngoing  ProjectStatus = "ongoing"
)

// Project is a research project.
type Project struct {
	SRN            string        `mapstructure:"srn" json:"srn,omitempty"`
	ExternalID     string        `mapstructure:"external_id" json:"external_id,omitempty"`
	Score          float64       `mapstructure:"score" json:"score"`
	Title          string        `mapstructure:"title" json:"title" validate:"required"`
	Description    string        `mapstructure:"description" json:"description"`
	Status         ProjectStatus `mapstructure:"status" json:"status" validate:"required,oneof=finished ongoing"`
	StartedAt      *time.Time    `mapstructure:"started_at" json:"started_at"`
	EndedAt        *time.Time    `mapstructure:"ended_at" json:"ended_at"`
	Coordinates    []float64     `mapstructure:"coordinates" json:"coordinates"`
	Goal           string        `mapstructure:"goal" json:"goal,omitempty"`
	Contacts       []Contact     `mapstructure:"contacts" json:"contacts" validate:"dive"`
	Owners         []Contact     `mapstructure:"owners" json:"owners" validate:"dive"`
	Persons        []Contact     `mapstructure:"persons" json:"persons" validate:"dive"`
	Keywords       []string      `mapstructure:"keywords" json:"keywords"`
	Parties        []string      `mapstructure:"parties" json:"parties"`
	Products       []string      `mapstructure:"products" json:"products"`
	ResearchThemes []string      `mapstructure:"research_themes" json:"research_themes"`
	Highlight      Highlight     `mapstructure:"highlight" json:"highlight,omitempty"`
}

// Kind implements Document.
func (*Project) Kind() Kind { return KindProject }

// Lookup implements Document.
func (p *Project) Lookup(attribute string) string {
	switch attribute {
	case "srn":
		return p.SRN
	case "external_id":
		return p.ExternalID
	}
	return ""
}

func (*Project) document() {}

func (p *Project) finalize() {
	p.Coordinates = nonNil(p.Coordinates)
	p.Contacts = nonNil(p.Contacts)
	p.Owners = nonNil(p.Owners)
	p.Persons = nonNil(p.Persons)
	p.Keywords = nonNil(p.Keywords)
	p.Parties = nonNil(p.Parties)
	p.Products = nonNil(p.Products)
	p.ResearchThemes = nonNil(p.ResearchThemes)
}
