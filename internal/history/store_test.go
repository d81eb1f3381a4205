package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/vide/internal/translation"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDefaultPath(t *testing.T) {
	p := DefaultPath()
	if !strings.HasSuffix(p, filepath.Join(".local", "state", "vide", "history.db")) {
		t.Errorf("Unexpected default path: %s", p)
	}
}

func latest(t *testing.T, s *Store) Entry {
	t.Helper()

	entries, err := s.Recent(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	return entries[0]
}

func TestSaveAndRead(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	note := "Lời chào **das Hallo**."
	result := &translation.Result{
		TranslatedText:   "Hallo",
		Explanation:      &note,
		MainPartOfSpeech: "Thán từ",
		RelatedTerms:     []translation.RelatedTerm{{Term: "das Hallo", Meaning: "tiếng chào"}},
	}

	id, err := s.Save(ctx, translation.Request{Text: " Xin chào ", Direction: translation.ViToDe}, result)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == "" {
		t.Error("Expected an ID")
	}

	entry := latest(t, s)
	if entry.ID != id {
		t.Errorf("Expected ID %s, got %s", id, entry.ID)
	}
	if entry.Request.Text != "Xin chào" {
		t.Errorf("Expected trimmed text, got %q", entry.Request.Text)
	}
	got := entry.Result
	if got.TranslatedText != "Hallo" || got.Note() != note || got.MainPartOfSpeech != "Thán từ" {
		t.Errorf("Unexpected result: %+v", got)
	}
	if len(got.RelatedTerms) != 1 || got.RelatedTerms[0].Term != "das Hallo" {
		t.Errorf("Unexpected terms: %v", got.RelatedTerms)
	}
}

func TestRecent_EmptyTermsNotNil(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, translation.Request{Text: "Danke", Direction: translation.DeToVi},
		&translation.Result{TranslatedText: "Cảm ơn"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := latest(t, s).Result
	if got.RelatedTerms == nil {
		t.Error("Expected empty non-nil related terms")
	}
	if got.Explanation != nil {
		t.Error("Expected absent explanation")
	}
}

func TestRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	texts := []string{"một", "hai", "ba"}
	for _, text := range texts {
		if _, err := s.Save(ctx, translation.Request{Text: text, Direction: translation.ViToDe},
			&translation.Result{TranslatedText: "x-" + text}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	entries, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Request.Text != "ba" || entries[1].Request.Text != "hai" {
		t.Errorf("Expected newest first, got %q then %q", entries[0].Request.Text, entries[1].Request.Text)
	}
	if entries[0].Request.Direction != translation.ViToDe {
		t.Errorf("Unexpected direction %s", entries[0].Request.Direction)
	}
	if entries[0].Result.TranslatedText != "x-ba" {
		t.Errorf("Unexpected result %q", entries[0].Result.TranslatedText)
	}

	all, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 entries with default limit, got %d", len(all))
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := s.Save(ctx, translation.Request{Text: "Hallo", Direction: translation.DeToVi},
		&translation.Result{TranslatedText: "Xin chào"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer s.Close()

	if entry := latest(t, s); entry.Result.TranslatedText != "Xin chào" {
		t.Errorf("Unexpected result after reopen: %+v", entry.Result)
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	if _, err := Open("/proc/nonexistent/dir/history.db"); err == nil {
		t.Error("Expected error for invalid path")
	}
}
