//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryName = "vide"

// Default target to run when none is specified
var Default = Build

// Build compiles the vide binary
func Build() error {
	fmt.Println("Building", binaryName)
	// go-sqlite3 needs cgo
	env := map[string]string{"CGO_ENABLED": "1"}
	return sh.RunWith(env, "go", "build", "-o", binaryName, "./cmd/vide")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs the binary into GOPATH/bin
func Install() error {
	mg.Deps(Vet)
	fmt.Println("Installing", binaryName)
	return sh.RunWith(map[string]string{"CGO_ENABLED": "1"}, "go", "install", "./cmd/vide")
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning")
	return os.RemoveAll(binaryName)
}
