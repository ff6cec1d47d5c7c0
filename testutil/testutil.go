package testutil

import (
	"os"
	"testing"

	"github.com/lkoester/keysort/keysort"
)

// Clone returns an independent copy of recs so tests can compare
// against the pre-sort state.
func Clone(recs []keysort.Record) []keysort.Record {
	return append([]keysort.Record(nil), recs...)
}

// WriteTempConfig writes content to a temporary TOML file and returns
// its path. Returns the file path and a cleanup function.
func WriteTempConfig(t *testing.T, content string) (string, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "keysort_config_*.toml")
	if err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp config file: %v", err)
	}

	tmpFile.Close()

	cleanup := func() {
		os.Remove(tmpFile.Name())
	}

	return tmpFile.Name(), cleanup
}

// TempFilePath returns a cross-platform temporary file path
// with the given pattern. Does not create the file.
func TempFilePath(t *testing.T, pattern string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	path := tmpFile.Name()
	tmpFile.Close()
	os.Remove(path) // Remove immediately, just need the path

	return path
}

// TempDirPath returns a cross-platform temporary directory path
func TempDirPath(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}
