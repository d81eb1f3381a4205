// Package history persists completed translations in a local SQLite
// database so earlier results can be listed and reused.
package history
