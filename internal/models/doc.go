// Package models lists the models available to the configured backend
// provider, so users can pick one that supports structured JSON output.
package models
