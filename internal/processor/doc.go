// Package processor contains the core flow for translation requests. It
// wires the configured backend into the translator and runs single and
// batch requests. Results are cached per run, recorded in the history
// database and rendered for the terminal. This package serves as the main
// coordinator between all other components.
package processor
