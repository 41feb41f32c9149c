// Site classification: a closed, ordered lookup over the audited URL.
// Purely presentational: the label never feeds scoring.
package analyze

import "strings"

type profileRule struct {
	pattern string
	label   string
}

// profileTable is matched top to bottom; first substring hit wins.
var profileTable = []profileRule{
	{"github", "Developer Platform"},
	{"stackoverflow", "Q&A Platform"},
	{"amazon", "E-commerce Site"},
	{"shop", "E-commerce Site"},
	{"store", "E-commerce Site"},
	{"news", "News Platform"},
	{"cnn", "News Platform"},
	{"bbc", "News Platform"},
	{".edu", "Educational Institution"},
}

const defaultProfile = "General Website"

// ClassifySite labels the audited URL. Total: unknown URLs get the default.
func ClassifySite(url string) string {
	u := strings.ToLower(url)
	for _, r := range profileTable {
		if strings.Contains(u, r.pattern) {
			return r.label
		}
	}
	return defaultProfile
}
