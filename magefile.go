//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "abbrevsearch"

// Default target to run when none is specified
var Default = Build

// Build builds the abbrevsearch binary
func Build() error {
	return sh.RunV("go", "build", "-o", binary, "./cmd/abbrevsearch")
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs the binary into GOPATH/bin after the tests pass
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/abbrevsearch")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binary)
}
