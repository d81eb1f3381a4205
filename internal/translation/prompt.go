package translation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTextLength is the longest accepted input, in characters
const MaxTextLength = 1000

// Prompt is everything a Backend needs for one attempt
type Prompt struct {
	Source       Language
	Target       Language
	Instructions string
	Schema       *Schema
}

// Builder creates prompts. GlossarySize > 0 asks for exactly that many
// related terms; zero lets the note decide how many there are.
type Builder struct {
	GlossarySize int
}

// NewBuilder creates a prompt builder
func NewBuilder(glossarySize int) *Builder {
	if glossarySize < 0 {
		glossarySize = 0
	}
	return &Builder{GlossarySize: glossarySize}
}

// Validate checks text and direction without building anything
func (b *Builder) Validate(text string, dir Direction) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("%w: text is empty", ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxTextLength {
		return fmt.Errorf("%w: text has %d characters, limit is %d", ErrInvalidInput, n, MaxTextLength)
	}
	if !dir.Valid() {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, dir)
	}
	return nil
}

// Build returns the instructions and output schema for text in direction dir
func (b *Builder) Build(text string, dir Direction) (*Prompt, error) {
	if err := b.Validate(text, dir); err != nil {
		return nil, err
	}

	source, target := dir.Languages()
	return &Prompt{
		Source:       source,
		Target:       target,
		Instructions: b.instructions(strings.TrimSpace(text), source, target),
		Schema:       ResultSchema(b.GlossarySize),
	}, nil
}

func (b *Builder) instructions(text string, source, target Language) string {
	var sb strings.Builder

	sb.WriteString("You are a Vietnamese-German language and culture expert.\n\n")

	fmt.Fprintf(&sb, "TASK 1: Translate the following text from %s to %s.\n", source, target)
	fmt.Fprintf(&sb, "<text>\n%s\n</text>\n", text)
	sb.WriteString(`Put the translation in "translatedText". Classify the translation as a whole in "mainPartOfSpeech", written in ` +
		string(ExplanatoryLanguage) + ` (e.g. "Danh từ", "Động từ", "Cụm từ", "Câu").` + "\n\n")

	fmt.Fprintf(&sb, "TASK 2: Write a brief \"Linguistic & Cultural Note\" in %s in \"explanation\". ", ExplanatoryLanguage)
	fmt.Fprintf(&sb, "Always write it in %s, whatever the translation direction. ", ExplanatoryLanguage)
	fmt.Fprintf(&sb, "Cover grammar, idioms, cultural context, regional differences or usage nuances of the %s rendering.\n", target)
	sb.WriteString("Mark every German word or phrase you mention in the note with double asterisks, for example **das Haus**.\n\n")

	sb.WriteString("TASK 3: List in \"relatedTerms\" every German term you marked in the note.\n")
	sb.WriteString("- RULE: The list and the note must match. Every marked term appears in the list exactly once, verbatim, ")
	sb.WriteString("and the list contains no term that is not marked in the note. ")
	sb.WriteString("The number of list items equals the number of distinct marked terms.\n")
	if b.GlossarySize > 0 {
		fmt.Fprintf(&sb, "- RULE: Mark exactly %d distinct German terms in the note, so the list has exactly %d items.\n",
			b.GlossarySize, b.GlossarySize)
	} else {
		sb.WriteString("- RULE: Be exhaustive. Do not pad the list with terms the note does not mention.\n")
	}
	sb.WriteString("- RULE: All German nouns MUST include their article (der/die/das), in the note and in the list.\n")
	fmt.Fprintf(&sb, "- Give the %s meaning of each term in \"meaning\" and its part of speech in %s in \"partOfSpeech\".\n",
		ExplanatoryLanguage, ExplanatoryLanguage)

	return sb.String()
}
