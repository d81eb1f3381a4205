package render

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"codeberg.org/snonux/vide/internal"
	"codeberg.org/snonux/vide/internal/history"
	"codeberg.org/snonux/vide/internal/translation"
)

const imageSearchBase = "https://www.google.com/search?tbm=isch&q="

var markedTerm = regexp.MustCompile(`\*\*([^*]+?)\*\*`)

// ImageSearchURL returns a web image search link for term
func ImageSearchURL(term string) string {
	return imageSearchBase + url.QueryEscape(strings.TrimSpace(term))
}

// PlainNote removes the **term** markers from a note
func PlainNote(note string) string {
	return markedTerm.ReplaceAllString(note, "$1")
}

// Options controls the text panel
type Options struct {
	ImageLinks bool
	Cached     bool
}

// Text writes a human readable panel for result
func Text(w io.Writer, req translation.Request, result *translation.Result, opts Options) {
	source, target := req.Direction.Languages()

	header := fmt.Sprintf("%s → %s", source, target)
	if opts.Cached {
		header += " (cached)"
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("─", len([]rune(header))))
	fmt.Fprintf(w, "%s\n", result.TranslatedText)
	if result.MainPartOfSpeech != "" {
		fmt.Fprintf(w, "  (%s)\n", result.MainPartOfSpeech)
	}

	if note := result.Note(); note != "" {
		fmt.Fprintf(w, "\nGhi chú:\n%s\n", PlainNote(note))
	}

	if len(result.RelatedTerms) == 0 {
		return
	}

	fmt.Fprintf(w, "\nTừ vựng liên quan (%d):\n", len(result.RelatedTerms))
	for i, term := range result.RelatedTerms {
		line := fmt.Sprintf("%2d. %s", i+1, term.Term)
		if term.PartOfSpeech != "" {
			line += fmt.Sprintf(" [%s]", term.PartOfSpeech)
		}
		fmt.Fprintf(w, "%s - %s\n", line, term.Meaning)
		if opts.ImageLinks {
			fmt.Fprintf(w, "    %s\n", ImageSearchURL(term.Term))
		}
	}
}

type jsonTerm struct {
	translation.RelatedTerm
	ImageSearchURL string `json:"imageSearchUrl"`
}

type jsonOutput struct {
	Request          translation.Request `json:"request"`
	TranslatedText   string              `json:"translatedText"`
	Explanation      *string             `json:"explanation"`
	MainPartOfSpeech string              `json:"mainPartOfSpeech,omitempty"`
	RelatedTerms     []jsonTerm          `json:"relatedTerms"`
}

// JSON writes result as indented JSON, adding an image search link to every term
func JSON(w io.Writer, req translation.Request, result *translation.Result) error {
	out := jsonOutput{
		Request:          req,
		TranslatedText:   result.TranslatedText,
		Explanation:      result.Explanation,
		MainPartOfSpeech: result.MainPartOfSpeech,
		RelatedTerms:     make([]jsonTerm, 0, len(result.RelatedTerms)),
	}
	for _, term := range result.RelatedTerms {
		out.RelatedTerms = append(out.RelatedTerms, jsonTerm{
			RelatedTerm:    term,
			ImageSearchURL: ImageSearchURL(term.Term),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// History writes one line per stored entry, newest first
func History(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No translations in history yet.")
		return
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s  %s → %s\n",
			e.CreatedAt.Local().Format(time.DateTime),
			e.Request.Direction,
			internal.Truncate(e.Request.Text, 40),
			internal.Truncate(e.Result.TranslatedText, 40))
	}
}
