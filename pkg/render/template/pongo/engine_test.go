package pongo_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formembed/pkg/render/template/pongo"
	"github.com/goliatone/go-formembed/pkg/testsupport"
)

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	engine, err := pongo.New(
		pongo.WithFS(fstest.MapFS{
			"hello.tpl":      {Data: []byte(`Hello {{ name }}!`)},
			"attrs.tpl":      {Data: []byte(`{% for name in names %}{{ name|tfattr }};{% endfor %}`)},
			"use-global.tpl": {Data: []byte(`{{ site|trim }}`)},
		}),
		pongo.WithGlobalData(map[string]any{"site": "  docs  "}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "<Ada>"}, w)
	})

	want := "Hello &lt;Ada&gt;!"
	if result != want {
		t.Fatalf("render mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_DataAttributeFilter(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("attrs.tpl", map[string]any{"names": []string{"hideHeaders", "size"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "data-tf-hide-headers;data-tf-size;"
	if got != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "docs" {
		t.Fatalf("expected trimmed global, got %q", got)
	}

	if err := engine.GlobalContext(map[string]any{"site": "handbook"}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err = engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "handbook" {
		t.Fatalf("expected updated global, got %q", got)
	}
}

func TestEngine_BaseDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.tpl"), []byte(`<b>{{ title }}</b>`), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	engine, err := pongo.New(pongo.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	got, err := engine.RenderTemplate("page", map[string]any{"title": "Disk"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<b>Disk</b>" {
		t.Fatalf("unexpected output %q", got)
	}

	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestNewRequiresTemplates(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}
