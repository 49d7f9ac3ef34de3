package document

// Video describes an embeddable video.
type Video struct {
	EmbedURL string `mapstructure:"embed_url" json:"embed_url" validate:"required,url"`
	Duration string `mapstructure:"duration" json:"duration"`
}

// Previews holds thumbnail URLs.
type Previews struct {
	FullSize     string `mapstructure:"full_size" json:"full_size" validate:"required,url"`
	Preview      string `mapstructure:"preview" json:"preview" validate:"required,url"`
	PreviewSmall string `mapstructure:"preview_small" json:"preview_small" validate:"required,url"`
}

// File is an attachment of a product.
type File struct {
	SRN          string    `mapstructure:"srn" json:"srn" validate:"required"`
	Hash         string    `mapstructure:"hash" json:"hash" validate:"required"`
	AccessRights string    `mapstructure:"access_rights" json:"access_rights" validate:"required"`
	State        State     `mapstructure:"state" json:"state" validate:"oneof=active inactive deleted skipped"`
	IsLink       bool      `mapstructure:"is_link" json:"is_link"`
	URL          string    `mapstructure:"url" json:"url,omitempty" validate:"omitempty,url"`
	Type         string    `mapstructure:"type" json:"type,omitempty"`
	Title        string    `mapstructure:"title" json:"title,omitempty"`
	Copyright    string    `mapstructure:"copyright" json:"copyright,omitempty"`
	MimeType     string    `mapstructure:"mime_type" json:"mime_type,omitempty"`
	Video        *Video    `mapstructure:"video" json:"video"`
	Previews     *Previews `mapstructure:"previews" json:"previews"`
	Priority     int       `mapstructure:"priority" json:"priority"`
}

func (f *File) fillDefaults() {
	if f.State == "" {
		f.State = StateActive
	}
}
