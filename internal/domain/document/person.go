package document

// Author credits a person on a product.
type Author struct {
	Name       string `mapstructure:"name" json:"name" validate:"required"`
	Email      string `mapstructure:"email" json:"email,omitempty" validate:"omitempty,email"`
	DAI        string `mapstructure:"dai" json:"dai,omitempty"`
	ISNI       string `mapstructure:"isni" json:"isni,omitempty"`
	ORCID      string `mapstructure:"orcid" json:"orcid,omitempty"`
	ExternalID string `mapstructure:"external_id" json:"external_id,omitempty"`
}

// Contact is a person reachable through email or a known identifier.
type Contact struct {
	Name       string `mapstructure:"name" json:"name,omitempty"`
	Email      string `mapstructure:"email" json:"email,omitempty" validate:"required_without=ExternalID,omitempty,email"`
	ExternalID string `mapstructure:"external_id" json:"external_id,omitempty" validate:"required_without=Email"`
}

// Person is a researcher or other individual indexed as its own entity.
type Person struct {
	SRN         string    `mapstructure:"srn" json:"srn" validate:"required"`
	Set         string    `mapstructure:"set" json:"set"`
	Provider    *Provider `mapstructure:"provider" json:"provider"`
	State       State     `mapstructure:"state" json:"state" validate:"oneof=active inactive deleted skipped"`
	Score       float64   `mapstructure:"score" json:"score"`
	Name        string    `mapstructure:"name" json:"name" validate:"required"`
	Email       string    `mapstructure:"email" json:"email,omitempty" validate:"omitempty,email"`
	ExternalID  string    `mapstructure:"external_id" json:"external_id,omitempty"`
	DAI         string    `mapstructure:"dai" json:"dai,omitempty"`
	ISNI        string    `mapstructure:"isni" json:"isni,omitempty"`
	ORCID       string    `mapstructure:"orcid" json:"orcid,omitempty"`
	JobTitle    string    `mapstructure:"job_title" json:"job_title,omitempty"`
	Description string    `mapstructure:"description" json:"description,omitempty"`
	Parties     []string  `mapstructure:"parties" json:"parties"`
	Themes      []string  `mapstructure:"themes" json:"themes"`
	Highlight   Highlight `mapstructure:"highlight" json:"highlight"`
}

// Kind implements Document.
func (*Person) Kind() Kind { return KindPerson }

// Lookup implements Document.
func (p *Person) Lookup(attribute string) string {
	switch attribute {
	case "srn":
		return p.SRN
	case "external_id":
		return p.ExternalID
	}
	return ""
}

func (*Person) document() {}

func (p *Person) finalize() {
	if p.State == "" {
		p.State = StateActive
	}
	p.Parties = nonNil(p.Parties)
	p.Themes = nonNil(p.Themes)
}
