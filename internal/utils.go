package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateRequestID creates an ID for a translation request based on the
// current time and the request text.
// Format: epochMillis_md5(text)[:8]
func GenerateRequestID(text string) string {
	epochMillis := time.Now().UnixMilli()

	hash := md5.Sum([]byte(text))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// Truncate shortens s to at most n characters, appending an ellipsis when cut
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
