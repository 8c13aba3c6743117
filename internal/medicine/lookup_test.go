package medicine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestLookup_Parsed(t *testing.T) {
	c := &fakeCompleter{reply: "Uses: Pain relief.\nBrand: Tylenol"}

	s, outcome, err := Lookup(context.Background(), c, testName, ModeFull)

	require.NoError(t, err)
	assert.Equal(t, OutcomeParsed, outcome)
	assert.Equal(t, "Tylenol", s.Brand)
	assert.Contains(t, c.prompt, "'Paracetamol'")
	assert.Contains(t, c.prompt, "Food Restrictions:")
}

func TestLookup_OracleUnavailable(t *testing.T) {
	boom := errors.New("connection refused")
	c := &fakeCompleter{err: boom}

	s, outcome, err := Lookup(context.Background(), c, testName, ModeFull)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, OutcomeOracleUnavailable, outcome)
	assert.Equal(t, FallbackSummary(testName), s)
}

func TestLookup_EmptyReply(t *testing.T) {
	c := &fakeCompleter{reply: "  \n"}

	s, outcome, err := Lookup(context.Background(), c, testName, ModeSimple)

	assert.ErrorIs(t, err, ErrEmptyReply)
	assert.Equal(t, OutcomeEmptyReply, outcome)
	assert.Equal(t, SimpleFallbackSummary(testName), s)
	assert.Contains(t, c.prompt, "Brands:")
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeSimple, ParseMode(" Simple "))
	assert.Equal(t, ModeFull, ParseMode("full"))
	assert.Equal(t, ModeFull, ParseMode(""))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "parsed", OutcomeParsed.String())
	assert.Equal(t, "empty_reply", OutcomeEmptyReply.String())
	assert.Equal(t, "oracle_unavailable", OutcomeOracleUnavailable.String())
}

func TestCleanName(t *testing.T) {
	tests := map[string]string{
		"Paracetamol":                      "Paracetamol",
		"  Ibuprofen 400mg\nSome detail":   "Ibuprofen 400mg",
		"Amoxicillin. It is an antibiotic": "Amoxicillin",
		"**Cetirizine**":                   "Cetirizine",
		"":                                 DefaultName,
		"...":                              DefaultName,
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanName(in), "CleanName(%q)", in)
	}
}

func TestCannedRecordsAreComplete(t *testing.T) {
	assert.Empty(t, missingFields(DemoInfo()))
	assert.Empty(t, missingFields(ScanRequiredInfo()))

	demo := DemoInfo()
	assert.Equal(t, "Paracetamol", demo.MedicineName)
	assert.Equal(t, DemoMode, demo.DetectionMethod)
}

func TestNewInfo(t *testing.T) {
	info := NewInfo("Ibuprofen", Normalize("Ibuprofen", "Uses: Pain"), "", AIRecognition, NewStaticTranslator())

	assert.Empty(t, missingFields(info))
	assert.Equal(t, PlaceholderImageURL, info.ImageURL)
	assert.Equal(t, "Ibuprofen", info.TamilData.Name)
}
