package configuration

import (
	"fmt"
	"strings"

	"github.com/surfedu/searchclient/internal/domain"
)

// SuffixSeparator splits an alias from a physical index disambiguation suffix.
const SuffixSeparator = "--"

// Alias is a parsed alias or index name.
//
// Grammar:
//
//	alias  := [prefix "-"] platform "-" name [ "--" suffix ]
//	name   := entity | language
//
// The last two dash separated segments before the suffix are always platform
// and name; anything before them is the prefix, which may itself contain dashes.
type Alias struct {
	Prefix   string
	Platform string
	Name     string
	Suffix   string
}

// ParseAlias parses an alias or physical index name.
func ParseAlias(s string) (Alias, error) {
	base, suffix, _ := strings.Cut(s, SuffixSeparator)
	segments := strings.Split(base, "-")
	if len(segments) < 2 {
		return Alias{}, fmt.Errorf("%w: %q", domain.ErrInvalidAlias, s)
	}
	for _, seg := range segments {
		if seg == "" {
			return Alias{}, fmt.Errorf("%w: %q has an empty segment", domain.ErrInvalidAlias, s)
		}
	}
	n := len(segments)
	return Alias{
		Prefix:   strings.Join(segments[:n-2], "-"),
		Platform: segments[n-2],
		Name:     segments[n-1],
		Suffix:   suffix,
	}, nil
}

// String renders the alias back into its textual form.
func (a Alias) String() string {
	s := a.Platform + "-" + a.Name
	if a.Prefix != "" {
		s = a.Prefix + "-" + s
	}
	if a.Suffix != "" {
		s += SuffixSeparator + a.Suffix
	}
	return s
}
