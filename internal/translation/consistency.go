package translation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

var markedTerm = regexp.MustCompile(`\*\*([^*]+?)\*\*`)

var germanArticles = []string{"der ", "die ", "das ", "den ", "dem ", "des ", "ein ", "eine ", "einen ", "einem ", "einer ", "eines "}

// ConsistencyReport compares the German terms marked in a note with the
// related terms list
type ConsistencyReport struct {
	// Mentioned holds the distinct marked terms in order of appearance
	Mentioned []string

	// Missing are mentioned in the note but absent from the list
	Missing []string

	// Unreferenced are listed but never mentioned in the note
	Unreferenced []string

	// Duplicates are listed more than once
	Duplicates []string
}

// OK reports whether note and list agree
func (r *ConsistencyReport) OK() bool {
	return len(r.Missing) == 0 && len(r.Unreferenced) == 0 && len(r.Duplicates) == 0
}

func (r *ConsistencyReport) String() string {
	if r.OK() {
		return fmt.Sprintf("consistent (%d terms)", len(r.Mentioned))
	}
	var parts []string
	if len(r.Missing) > 0 {
		parts = append(parts, "missing from list: "+strings.Join(r.Missing, ", "))
	}
	if len(r.Unreferenced) > 0 {
		parts = append(parts, "not in note: "+strings.Join(r.Unreferenced, ", "))
	}
	if len(r.Duplicates) > 0 {
		parts = append(parts, "duplicated: "+strings.Join(r.Duplicates, ", "))
	}
	return "inconsistent glossary (" + strings.Join(parts, "; ") + ")"
}

// CheckConsistency validates that every German term marked in the note is
// listed exactly once and that nothing else is listed. Terms match ignoring
// case, surrounding punctuation and a leading article.
//
// A listed term that is not marked still counts as referenced when the note
// contains it as plain text made of whole words.
func CheckConsistency(r *Result) *ConsistencyReport {
	report := &ConsistencyReport{}
	note := r.Note()

	mentioned := make(map[string]bool)
	for _, m := range markedTerm.FindAllStringSubmatch(note, -1) {
		term := strings.TrimSpace(m[1])
		key := termKey(term)
		if key == "" || mentioned[key] {
			continue
		}
		mentioned[key] = true
		report.Mentioned = append(report.Mentioned, term)
	}

	listed := make(map[string]int)
	noteWords := words(note)
	for _, rt := range r.RelatedTerms {
		key := termKey(rt.Term)
		listed[key]++
		switch {
		case listed[key] == 2:
			report.Duplicates = append(report.Duplicates, rt.Term)
		case listed[key] > 2:
		case mentioned[key]:
		case containsWords(noteWords, words(key)):
		default:
			report.Unreferenced = append(report.Unreferenced, rt.Term)
		}
	}

	for _, term := range report.Mentioned {
		if listed[termKey(term)] == 0 {
			report.Missing = append(report.Missing, term)
		}
	}

	return report
}

// termKey folds a term to the form used for matching
func termKey(term string) string {
	key := strings.ToLower(strings.Join(strings.Fields(term), " "))
	key = strings.Trim(key, ".,;:!?\"'«»„“”()[]")
	for _, article := range germanArticles {
		if strings.HasPrefix(key, article) {
			key = strings.TrimSpace(key[len(article):])
			break
		}
	}
	return key
}

// words splits s into lowercased runs of letters, marks and digits
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsDigit(r)
	})
}

// containsWords reports whether needle occurs in haystack as consecutive words
func containsWords(haystack, needle []string) bool {
	if len(needle) == 0 {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}
