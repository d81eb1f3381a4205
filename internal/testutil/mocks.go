package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"codeberg.org/snonux/vide/internal/translation"
)

// StubResponse is one canned backend reply
type StubResponse struct {
	Payload string
	Err     error
}

// StubCall records one Invoke call
type StubCall struct {
	Instructions string
	Schema       *translation.Schema
}

// StubBackend mocks a generative backend. Responses are returned in order;
// the last one repeats once the list is exhausted.
type StubBackend struct {
	mu        sync.Mutex
	responses []StubResponse
	calls     []StubCall
}

// NewStubBackend creates a stub returning responses in order
func NewStubBackend(responses ...StubResponse) *StubBackend {
	return &StubBackend{responses: responses}
}

// Invoke mocks a single backend round trip
func (s *StubBackend) Invoke(ctx context.Context, instructions string, schema *translation.Schema) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := len(s.calls)
	s.calls = append(s.calls, StubCall{Instructions: instructions, Schema: schema})

	if len(s.responses) == 0 {
		return "", errors.New("stub backend has no responses")
	}
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	r := s.responses[idx]
	return r.Payload, r.Err
}

// Calls returns a copy of the recorded calls
func (s *StubBackend) Calls() []StubCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StubCall(nil), s.calls...)
}

// CallCount returns how often Invoke was called
func (s *StubBackend) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// RecordingSleeper records requested delays without sleeping
type RecordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

// Sleep records d and returns immediately
func (r *RecordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	return ctx.Err()
}

// Delays returns a copy of the recorded delays
func (r *RecordingSleeper) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

// TestDataGenerator generates test payloads
type TestDataGenerator struct{}

// GermanTerms returns ten German nouns with articles and Vietnamese meanings
func (g *TestDataGenerator) GermanTerms() []translation.RelatedTerm {
	return []translation.RelatedTerm{
		{Term: "der Gruß", Meaning: "lời chào", PartOfSpeech: "Danh từ"},
		{Term: "die Begrüßung", Meaning: "sự chào hỏi", PartOfSpeech: "Danh từ"},
		{Term: "das Hallo", Meaning: "tiếng chào", PartOfSpeech: "Danh từ"},
		{Term: "der Morgen", Meaning: "buổi sáng", PartOfSpeech: "Danh từ"},
		{Term: "der Abend", Meaning: "buổi tối", PartOfSpeech: "Danh từ"},
		{Term: "die Höflichkeit", Meaning: "sự lịch sự", PartOfSpeech: "Danh từ"},
		{Term: "der Handschlag", Meaning: "cái bắt tay", PartOfSpeech: "Danh từ"},
		{Term: "das Gespräch", Meaning: "cuộc trò chuyện", PartOfSpeech: "Danh từ"},
		{Term: "die Anrede", Meaning: "cách xưng hô", PartOfSpeech: "Danh từ"},
		{Term: "der Abschied", Meaning: "sự chia tay", PartOfSpeech: "Danh từ"},
	}
}

// NoteFor returns a Vietnamese note that marks every given term
func (g *TestDataGenerator) NoteFor(terms []translation.RelatedTerm) string {
	note := "Trong tiếng Đức, lời chào phụ thuộc vào ngữ cảnh."
	for _, t := range terms {
		note += " Ví dụ: **" + t.Term + "** (" + t.Meaning + ")."
	}
	return note
}

// Payload encodes a backend reply. An empty note omits "explanation" and
// nil terms omit "relatedTerms".
func (g *TestDataGenerator) Payload(translated, note string, terms []translation.RelatedTerm) string {
	m := map[string]any{"translatedText": translated}
	if note != "" {
		m["explanation"] = note
	}
	if terms != nil {
		m["relatedTerms"] = terms
	}
	b, _ := json.Marshal(m)
	return string(b)
}
