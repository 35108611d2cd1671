package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formembed/pkg/embed"
	"github.com/goliatone/go-formembed/pkg/manifest"
)

// MustLoadManifest loads a manifest fixture, failing the test on error.
func MustLoadManifest(t *testing.T, path string) *manifest.Store {
	t.Helper()

	store, err := manifest.LoadFile(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	return store
}

// MustBuild returns the builder for the named manifest embed.
func MustBuild(t *testing.T, store *manifest.Store, name string) *embed.Builder {
	t.Helper()

	def, ok := store.Definition(name)
	if !ok {
		t.Fatalf("manifest embed %q not found", name)
	}
	builder, err := def.Builder()
	if err != nil {
		t.Fatalf("build embed %q: %v", name, err)
	}
	return builder
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file without its trailing newline, so
// goldens stay editor friendly while snippets carry no trailing whitespace.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return strings.TrimRight(string(MustReadGolden(t, path)), "\n")
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
