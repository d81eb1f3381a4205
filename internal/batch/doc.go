// Package batch reads translation requests from text files, one request
// per line, with an optional direction prefix.
package batch
