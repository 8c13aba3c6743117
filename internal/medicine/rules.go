package medicine

import "strings"

// Anchoring controls where a label may appear in a line.
type Anchoring int

const (
	// AnchorPrefix matches only when the line starts with the label.
	AnchorPrefix Anchoring = iota
	// AnchorAnywhere matches a keyword anywhere in the line, as long as the line has a colon.
	AnchorAnywhere
	// AnchorKey matches a keyword inside the text before the first colon.
	AnchorKey
)

// LabelRule recognizes the start of one section in an oracle reply.
type LabelRule struct {
	Field     Field
	Anchoring Anchoring
	// Keywords are lower-case. Prefix rules include the trailing colon.
	Keywords []string
}

// Match reports whether the lower-cased line starts the rule's section.
func (r LabelRule) Match(lower string) bool {
	switch r.Anchoring {
	case AnchorPrefix:
		for _, k := range r.Keywords {
			if strings.HasPrefix(lower, k) {
				return true
			}
		}
	case AnchorAnywhere:
		if !strings.Contains(lower, ":") {
			return false
		}
		for _, k := range r.Keywords {
			if strings.Contains(lower, k) {
				return true
			}
		}
	case AnchorKey:
		i := strings.Index(lower, ":")
		if i < 0 {
			return false
		}
		key := strings.TrimSpace(lower[:i])
		for _, k := range r.Keywords {
			if strings.Contains(key, k) {
				return true
			}
		}
	}
	return false
}

// Rules is the label table used by Normalize, evaluated top to bottom.
var Rules = []LabelRule{
	{Field: Uses, Anchoring: AnchorPrefix, Keywords: []string{"uses:"}},
	{Field: Dosage, Anchoring: AnchorPrefix, Keywords: []string{"dosage:"}},
	{Field: Precautions, Anchoring: AnchorPrefix, Keywords: []string{"precautions:"}},
	{Field: SideEffects, Anchoring: AnchorAnywhere, Keywords: []string{"side effect"}},
	{Field: FoodRestriction, Anchoring: AnchorAnywhere, Keywords: []string{"food", "alcohol"}},
	{Field: Category, Anchoring: AnchorPrefix, Keywords: []string{"category:"}},
	{Field: Brand, Anchoring: AnchorPrefix, Keywords: []string{"brand:"}},
}

// SimpleRules is the table used by NormalizeSimple.
var SimpleRules = []LabelRule{
	{Field: Uses, Anchoring: AnchorKey, Keywords: []string{"use"}},
	{Field: Dosage, Anchoring: AnchorKey, Keywords: []string{"dosage", "dose"}},
	{Field: Precautions, Anchoring: AnchorKey, Keywords: []string{"precaut", "warning"}},
	{Field: SideEffects, Anchoring: AnchorKey, Keywords: []string{"side"}},
	{Field: FoodRestriction, Anchoring: AnchorKey, Keywords: []string{"food", "diet"}},
	{Field: Category, Anchoring: AnchorKey, Keywords: []string{"type", "categor"}},
	{Field: Brand, Anchoring: AnchorKey, Keywords: []string{"brand"}},
}

// matchRule returns the first rule in rules that matches lower.
func matchRule(rules []LabelRule, lower string) (LabelRule, bool) {
	for _, r := range rules {
		if r.Match(lower) {
			return r, true
		}
	}
	return LabelRule{}, false
}

// afterColon returns the trimmed text following the first colon in line.
func afterColon(line string) string {
	if i := strings.Index(line, ":"); i >= 0 {
		return strings.TrimSpace(line[i+1:])
	}
	return ""
}
