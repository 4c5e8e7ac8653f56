// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/HicaroD/fcad/internal/driver"
)

const DefaultFilename = "test.fcad"

// WriteSource writes src to name inside dir and returns the file path.
func WriteSource(t testing.TB, dir, name, src string) string {
	t.Helper()
	if name == "" {
		name = DefaultFilename
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("unable to write %s: %s", path, err)
	}
	return path
}

func CompileFile(path string) (*driver.Result, error) {
	return driver.New(zerolog.Nop()).Compile(path)
}

// Compile compiles src and fails the test on error.
func Compile(t testing.TB, src string) *driver.Result {
	t.Helper()
	result, err := driver.New(zerolog.Nop()).CompileSource(DefaultFilename, []byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return result
}
