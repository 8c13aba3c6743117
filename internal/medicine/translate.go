package medicine

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// Translator produces the secondary-language record for a medicine.
// Implementations must not fail; they degrade to canned text instead.
type Translator interface {
	Translate(name string, s Summary) Secondary
}

//go:embed templates/tamil.yaml
var tamilTemplates []byte

type template struct {
	Uses        string `yaml:"uses"`
	Dosage      string `yaml:"dosage"`
	Precautions string `yaml:"precautions"`
}

func (t template) complete() bool {
	return strings.TrimSpace(t.Uses) != "" &&
		strings.TrimSpace(t.Dosage) != "" &&
		strings.TrimSpace(t.Precautions) != ""
}

// alternateTemplate is used when the template document cannot be loaded.
var alternateTemplate = template{
	Uses:        "மருத்துவ சிகிச்சைக்கு பயன்படுத்தப்படுகிறது.",
	Dosage:      "வைத்தியரைக் கலந்தாலோசிக்கவும்.",
	Precautions: "பாதுகாப்பு தகவல்களுக்கு வைத்தியரைக் கலந்தாலோசிக்கவும்.",
}

// StaticTranslator is a stub: it ignores the English summary and returns the
// same canned Tamil text for every medicine.
type StaticTranslator struct {
	tmpl template
	err  error
}

// NewStaticTranslator loads the embedded Tamil templates.
func NewStaticTranslator() *StaticTranslator {
	return NewStaticTranslatorFrom(tamilTemplates)
}

// NewStaticTranslatorFrom loads templates from a YAML document with a "primary"
// section. A broken document makes the translator serve the alternate template.
func NewStaticTranslatorFrom(doc []byte) *StaticTranslator {
	var parsed struct {
		Primary template `yaml:"primary"`
	}
	if err := yaml.Unmarshal(doc, &parsed); err != nil {
		return &StaticTranslator{err: fmt.Errorf("parse tamil templates: %w", err)}
	}
	if !parsed.Primary.complete() {
		return &StaticTranslator{err: fmt.Errorf("tamil templates: primary section incomplete")}
	}
	return &StaticTranslator{tmpl: parsed.Primary}
}

// Err reports why the primary templates could not be loaded, if they could not.
func (t *StaticTranslator) Err() error {
	return t.err
}

func (t *StaticTranslator) Translate(name string, _ Summary) Secondary {
	tmpl := t.tmpl
	if t.err != nil {
		tmpl = alternateTemplate
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	return Secondary{
		Name:        name,
		Uses:        tmpl.Uses,
		Dosage:      tmpl.Dosage,
		Precautions: tmpl.Precautions,
	}
}
