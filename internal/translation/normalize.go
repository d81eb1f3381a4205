package translation

import (
	"encoding/json"
	"fmt"
	"strings"
)

type wireResult struct {
	TranslatedText   string        `json:"translatedText"`
	Explanation      *string       `json:"explanation"`
	MainPartOfSpeech *string       `json:"mainPartOfSpeech"`
	RelatedTerms     []RelatedTerm `json:"relatedTerms"`
}

// Normalize parses a raw backend payload into a Result.
//
// Unknown fields are ignored and missing optional fields are treated as
// absent. Related terms are kept exactly as returned, even when they break
// the note/glossary consistency rule; see CheckConsistency.
func Normalize(raw string) (*Result, error) {
	payload := stripCodeFence(strings.TrimSpace(raw))
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedResponse)
	}

	var w wireResult
	if err := json.Unmarshal([]byte(payload), &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if strings.TrimSpace(w.TranslatedText) == "" {
		return nil, fmt.Errorf("%w: translatedText is missing", ErrMalformedResponse)
	}

	result := &Result{
		TranslatedText: w.TranslatedText,
		RelatedTerms:   w.RelatedTerms,
	}
	if w.Explanation != nil && strings.TrimSpace(*w.Explanation) != "" {
		note := *w.Explanation
		result.Explanation = &note
	}
	if w.MainPartOfSpeech != nil {
		result.MainPartOfSpeech = strings.TrimSpace(*w.MainPartOfSpeech)
	}
	if result.RelatedTerms == nil {
		result.RelatedTerms = []RelatedTerm{}
	}

	return result, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block, which some
// models emit even in JSON mode
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
