// Package backoff implements a bounded retry loop with exponential delays.
// Delays double after each failed attempt and no delay follows the last one.
package backoff
