package search

import "strings"

// legacyPrefixes rewrite identifiers from the old Edurep catalogue. Order matters,
// the first matching prefix wins.
var legacyPrefixes = []struct {
	legacy, current string
}{
	{"edurep_delen:", "WikiwijsDelen:urn:uuid:"},
	{"surf:oai:surfsharekit.nl:", ""},
	{"surfsharekit:oai:surfsharekit.nl:", ""},
	{"oer_han:oai:surfsharekit.nl:", ""},
}

// CleanExternalID maps a legacy external identifier onto its current form.
func CleanExternalID(id string) string {
	for _, p := range legacyPrefixes {
		if rest, ok := strings.CutPrefix(id, p.legacy); ok {
			return p.current + rest
		}
	}
	return id
}
