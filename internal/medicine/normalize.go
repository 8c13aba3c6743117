package medicine

import (
	"strings"
	"unicode/utf8"
)

const (
	maxLines         = 3
	minLines         = 2
	simpleMaxLines   = 2
	shortLineRunes   = 50
	maxSingleRunes   = 100
	simpleMinRunes   = 10
	truncationMarker = "..."
)

// noField marks that no section is active.
const noField Field = -1

// Normalize turns one free-text oracle reply into a Summary in which each of the
// five multi-line fields holds two or three lines and category and brand are at
// most 100 characters. It never fails: a blank reply yields FallbackSummary.
func Normalize(name, raw string) Summary {
	name = singleLine(name)
	if strings.TrimSpace(raw) == "" {
		return FallbackSummary(name)
	}

	s := seedSummary(name)
	current := noField

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if rule, ok := matchRule(Rules, strings.ToLower(line)); ok {
			current = rule.Field
			// A label starts fresh content for its field.
			if content := afterColon(line); content != "" {
				s.Set(rule.Field, content)
			}
			continue
		}

		if current.MultiLine() {
			s.Set(current, appendContinuation(s.Get(current), line, maxLines))
		}
	}

	for f := Uses; f <= FoodRestriction; f++ {
		lines := nonEmptyLines(s.Get(f), maxLines)
		for len(lines) < minLines {
			lines = append(lines, paddingLine(f, name))
		}
		s.Set(f, strings.Join(lines, "\n"))
	}
	s.Category = capLength(s.Category)
	s.Brand = capLength(s.Brand)

	return s
}

// NormalizeSimple targets the shorter one-to-two line reply format. Labels are
// matched anywhere in the text before the colon, continuations stop at two lines,
// and any field shorter than ten characters is replaced by its default.
func NormalizeSimple(name, raw string) Summary {
	name = singleLine(name)
	if strings.TrimSpace(raw) == "" {
		return SimpleFallbackSummary(name)
	}

	var s Summary
	current := noField

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, ":") {
			rule, ok := matchRule(SimpleRules, strings.ToLower(line))
			if !ok {
				current = noField
				continue
			}
			current = rule.Field
			if content := afterColon(line); content != "" {
				s.Set(rule.Field, content)
			}
			continue
		}

		if current.MultiLine() {
			s.Set(current, appendContinuation(s.Get(current), line, simpleMaxLines))
		}
	}

	defaults := simpleDefaults(name)
	for f := Field(0); f < numFields; f++ {
		v := strings.TrimSpace(s.Get(f))
		if f.MultiLine() {
			v = strings.Join(nonEmptyLines(v, simpleMaxLines), "\n")
		}
		if utf8.RuneCountInString(v) < simpleMinRunes {
			v = defaults.Get(f)
		}
		if !f.MultiLine() {
			v = capLength(v)
		}
		s.Set(f, v)
	}

	return s
}

// appendContinuation adds an unlabeled line to the current field value.
// Below limit lines it becomes a new line; at the limit it is joined onto a short
// last line, otherwise it is dropped.
func appendContinuation(current, line string, limit int) string {
	lines := strings.Split(current, "\n")
	if len(lines) < limit {
		return current + "\n" + line
	}
	if utf8.RuneCountInString(lines[len(lines)-1]) < shortLineRunes {
		return current + " " + line
	}
	return current
}

// nonEmptyLines splits v into trimmed non-empty lines, keeping at most limit.
func nonEmptyLines(v string, limit int) []string {
	var out []string
	for _, l := range strings.Split(v, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

func capLength(v string) string {
	if utf8.RuneCountInString(v) <= maxSingleRunes {
		return v
	}
	r := []rune(v)
	return string(r[:maxSingleRunes-len(truncationMarker)]) + truncationMarker
}

// singleLine collapses runs of whitespace in a medicine name, since the name is
// spliced into line-based defaults.
func singleLine(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
