// Package internal holds helpers shared by all vide packages.
package internal

// Version is the vide release version
const Version = "0.3.1"
