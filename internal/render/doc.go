// Package render formats translation results for the terminal, either as a
// readable panel or as JSON.
package render
