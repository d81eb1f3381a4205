package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/vide/internal/translation"
)

// Entry is one request read from a batch file
type Entry struct {
	Line      int
	Text      string
	Direction translation.Direction
}

// ReadBatchFile reads one request per line from filename.
// Supported line formats:
//   - "Xin chào" (translated in defaultDir)
//   - "de-vi: Guten Morgen" (explicit direction prefix)
//   - "# comment" (ignored)
//
// Blank lines are skipped. Lines whose text is empty after the prefix are skipped too.
func ReadBatchFile(filename string, defaultDir translation.Direction) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		dir, text := ParseLine(line, defaultDir)
		if text == "" {
			continue
		}
		entries = append(entries, Entry{Line: lineNo, Text: text, Direction: dir})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}

// ParseLine splits an optional "vi-de:" or "de-vi:" prefix from line
func ParseLine(line string, defaultDir translation.Direction) (translation.Direction, string) {
	prefix, rest, found := strings.Cut(line, ":")
	if found {
		if dir, err := translation.ParseDirection(prefix); err == nil {
			return dir, strings.TrimSpace(rest)
		}
	}
	return defaultDir, strings.TrimSpace(line)
}
