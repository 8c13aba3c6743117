package medicine

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyReply means the oracle answered but returned no text.
var ErrEmptyReply = errors.New("oracle reply was empty")

// Completer answers a text prompt. The oracle adapters satisfy it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Mode selects the prompt and normalizer pair used by Lookup.
type Mode string

const (
	ModeFull   Mode = "full"
	ModeSimple Mode = "simple"
)

// ParseMode maps a configuration value to a Mode, defaulting to ModeFull.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeSimple {
		return ModeSimple
	}
	return ModeFull
}

// Outcome tells the caller which path produced a Summary.
type Outcome int

const (
	// OutcomeParsed means the oracle reply was normalized.
	OutcomeParsed Outcome = iota
	// OutcomeEmptyReply means the oracle returned nothing and the fallback was used.
	OutcomeEmptyReply
	// OutcomeOracleUnavailable means the oracle call failed and the fallback was used.
	OutcomeOracleUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeParsed:
		return "parsed"
	case OutcomeEmptyReply:
		return "empty_reply"
	case OutcomeOracleUnavailable:
		return "oracle_unavailable"
	}
	return "unknown"
}

// Normalizer returns the normalize function for the mode.
func (m Mode) Normalizer() func(name, raw string) Summary {
	if m == ModeSimple {
		return NormalizeSimple
	}
	return Normalize
}

// Prompt returns the detail prompt for the mode.
func (m Mode) Prompt(name string) string {
	if m == ModeSimple {
		return SimplePrompt(name)
	}
	return DetailPrompt(name)
}

// Lookup asks the oracle about name and normalizes the reply. The Summary is
// always complete; the Outcome and error describe why a fallback was used.
func Lookup(ctx context.Context, c Completer, name string, mode Mode) (Summary, Outcome, error) {
	normalize := mode.Normalizer()

	text, err := c.Complete(ctx, mode.Prompt(name))
	if err != nil {
		return normalize(name, ""), OutcomeOracleUnavailable, fmt.Errorf("lookup %q: %w", name, err)
	}
	if strings.TrimSpace(text) == "" {
		return normalize(name, ""), OutcomeEmptyReply, ErrEmptyReply
	}
	return normalize(name, text), OutcomeParsed, nil
}

// NewInfo assembles the record shown on the result view.
func NewInfo(name string, s Summary, imageURL string, method DetectionMethod, tr Translator) Info {
	if imageURL == "" {
		imageURL = PlaceholderImageURL
	}
	return Info{
		MedicineName:    name,
		Summary:         s,
		ImageURL:        imageURL,
		DetectionMethod: method,
		TamilData:       tr.Translate(name, s),
	}
}
