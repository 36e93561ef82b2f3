// Package testsupport holds helpers shared by package tests. Helpers fail the
// test on error to keep call sites short.
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

	"github.com/goliatone/go-formkit/pkg/forms"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustParseDefinition parses a single JSON or YAML form definition.
func MustParseDefinition(t testing.TB, source, data string) schema.Definition {
	t.Helper()

	def, err := schema.Parse([]byte(data), source)
	if err != nil {
		t.Fatalf("parse definition %s: %v", source, err)
	}
	return def
}

// MustBuild parses a definition and builds its declaration with the default
// builder.
func MustBuild(t testing.TB, source, data string) forms.Declaration {
	t.Helper()

	decl, err := schema.NewBuilder().Build(MustParseDefinition(t, source, data))
	if err != nil {
		t.Fatalf("build definition %s: %v", source, err)
	}
	return decl
}

// AssertMarkup compares markup after trimming surrounding whitespace.
func AssertMarkup(t testing.TB, want, got string) {
	t.Helper()
	if diff := cmp.Diff(strings.TrimSpace(want), strings.TrimSpace(got)); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

// MustReadGolden reads a golden file.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written and the test should stop comparing.
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t testing.TB, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
