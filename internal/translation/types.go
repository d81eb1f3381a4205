package translation

import (
	"fmt"
	"strings"
)

// Language is one of the two supported languages
type Language string

const (
	Vietnamese Language = "Vietnamese"
	German     Language = "German"
)

// ExplanatoryLanguage is the language every cultural note is written in,
// independent of the translation direction
const ExplanatoryLanguage = Vietnamese

// Direction names the ordered (source, target) language pair of a request
type Direction string

const (
	ViToDe Direction = "vi-de"
	DeToVi Direction = "de-vi"
)

// Directions lists all supported directions
var Directions = []Direction{ViToDe, DeToVi}

// ParseDirection accepts "vi-de" or "de-vi" in any case
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		names := make([]string, len(Directions))
		for i, dir := range Directions {
			names[i] = string(dir)
		}
		return "", fmt.Errorf("%w: unknown direction %q (use %s)", ErrInvalidInput, s, strings.Join(names, " or "))
	}
	return d, nil
}

// Valid reports whether d is a supported direction
func (d Direction) Valid() bool {
	return d == ViToDe || d == DeToVi
}

// Languages returns the source and target language of d
func (d Direction) Languages() (source, target Language) {
	if d == DeToVi {
		return German, Vietnamese
	}
	return Vietnamese, German
}

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	if d == DeToVi {
		return ViToDe
	}
	return DeToVi
}

// Request is a single translation request
type Request struct {
	Text      string    `json:"text"`
	Direction Direction `json:"direction"`
}

// RelatedTerm is one glossary entry. German nouns carry their article in Term.
type RelatedTerm struct {
	Term         string `json:"term"`
	Meaning      string `json:"meaning"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
}

// Result is the normalized outcome of a translation request
type Result struct {
	TranslatedText string `json:"translatedText"`

	// Explanation is nil when the backend returned no note
	Explanation *string `json:"explanation,omitempty"`

	RelatedTerms     []RelatedTerm `json:"relatedTerms"`
	MainPartOfSpeech string        `json:"mainPartOfSpeech,omitempty"`
}

// Note returns the explanation or an empty string when there is none
func (r *Result) Note() string {
	if r.Explanation == nil {
		return ""
	}
	return *r.Explanation
}
