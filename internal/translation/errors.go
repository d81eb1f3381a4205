package translation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a caller error such as blank text. Never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBackendRequest reports a transport or backend failure for one attempt
	ErrBackendRequest = errors.New("backend request failed")

	// ErrMalformedResponse reports a backend reply that does not have the
	// minimal required shape
	ErrMalformedResponse = errors.New("malformed response")

	// ErrTranslationUnavailable reports that all attempts failed
	ErrTranslationUnavailable = errors.New("translation service busy or unreachable")
)

// UnavailableError is returned once the retry budget is spent. It matches
// ErrTranslationUnavailable and the last attempt's error with errors.Is.
type UnavailableError struct {
	Attempts int
	Last     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%v (after %d attempts): %v", ErrTranslationUnavailable, e.Attempts, e.Last)
}

func (e *UnavailableError) Unwrap() []error {
	return []error{ErrTranslationUnavailable, e.Last}
}

// IsRetryable reports whether err is a per-attempt failure the orchestrator retries
func IsRetryable(err error) bool {
	return errors.Is(err, ErrBackendRequest) || errors.Is(err, ErrMalformedResponse)
}
