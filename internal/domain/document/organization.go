package document

import "github.com/surfedu/searchclient/internal/domain"

// BaseOrganization is an organization inside the education context.
type BaseOrganization struct {
	SRN    string `mapstructure:"srn" json:"srn" validate:"required"`
	Name   string `mapstructure:"name" json:"name"`
	ROR    string `mapstructure:"ror" json:"ror"`
	IsRoot *bool  `mapstructure:"is_root" json:"is_root"`
}

// GenericOrganization may come from outside the education context and lack an SRN.
type GenericOrganization struct {
	Name string `mapstructure:"name" json:"name" validate:"required"`
	SRN  string `mapstructure:"srn" json:"srn,omitempty"`
	ROR  string `mapstructure:"ror" json:"ror,omitempty"`
}

// Organization is an institution or collaboration.
type Organization struct {
	BaseOrganization `mapstructure:",squash"`

	Entity      domain.Entity         `mapstructure:"-" json:"entity"`
	Set         string                `mapstructure:"set" json:"set" validate:"required"`
	Provider    *Provider             `mapstructure:"provider" json:"provider"`
	State       State                 `mapstructure:"state" json:"state" validate:"oneof=active inactive deleted skipped"`
	Score       float64               `mapstructure:"score" json:"score"`
	Description string                `mapstructure:"description" json:"description"`
	Type        string                `mapstructure:"type" json:"type"`
	Secretary   *BaseOrganization     `mapstructure:"secretary" json:"secretary"`
	Parents     []BaseOrganization    `mapstructure:"parents" json:"parents" validate:"dive"`
	Members     []GenericOrganization `mapstructure:"members" json:"members" validate:"dive"`
	Highlight   Highlight             `mapstructure:"highlight" json:"highlight,omitempty"`
}

// Kind implements Document.
func (*Organization) Kind() Kind { return KindOrganization }

// Lookup implements Document. Organizations carry no external id, so they
// can only be looked up by srn.
func (o *Organization) Lookup(attribute string) string {
	if attribute == "srn" {
		return o.SRN
	}
	return ""
}

func (*Organization) document() {}

func (o *Organization) finalize() {
	o.Entity = domain.EntityOrganizations
	if o.State == "" {
		o.State = StateActive
	}
	o.Parents = nonNil(o.Parents)
	o.Members = nonNil(o.Members)
}
