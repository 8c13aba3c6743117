package medicine

import "strings"

// DefaultName is used when the oracle could not name the medicine.
const DefaultName = "Medicine"

// CleanName reduces an identification reply to its first line, cut at the first
// period, with markdown emphasis and quotes removed. An empty result becomes DefaultName.
func CleanName(reply string) string {
	name := strings.TrimSpace(reply)
	if i := strings.Index(name, "\n"); i >= 0 {
		name = name[:i]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	name = strings.Trim(strings.TrimSpace(name), "*_\"'` ")
	if name == "" {
		return DefaultName
	}
	return name
}
