// Package backend provides the generative backends used for translation:
// Google Gemini through google.golang.org/genai and OpenAI chat completions.
// Each backend sends one request with a constrained JSON output schema and
// returns the raw reply. A circuit breaker can wrap any backend.
package backend
