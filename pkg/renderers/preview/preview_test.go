package preview_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formembed/pkg/embed"
	"github.com/goliatone/go-formembed/pkg/render"
	"github.com/goliatone/go-formembed/pkg/renderers/preview"
	"github.com/goliatone/go-formembed/pkg/testsupport"
)

func TestRenderer_RendersPage(t *testing.T) {
	renderer, err := preview.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	builder := embed.NewModal("abc123").
		SetOption("hideHeaders", embed.Bool(true)).
		SetHiddenField("source", "docs")
	builder = embed.Must(builder.SetModalType(embed.ModalSlider))

	output, err := renderer.Render(testsupport.Context(), render.Embed{
		Name:        "contact",
		Title:       "Contact <form>",
		Description: `<p>Ask <strong>anything</strong></p><script>alert(1)</script>`,
		Builder:     builder,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(output)

	mustContain := []string{
		"<title>Contact &lt;form&gt;</title>",
		builder.HTML(),
		"&lt;button data-tf-slider=",
		"<p>Ask <strong>anything</strong></p>",
		"<code>data-tf-hide-headers</code>",
		"<td>source</td>",
		"modal / slider",
	}
	for _, fragment := range mustContain {
		if !strings.Contains(page, fragment) {
			t.Fatalf("expected page to contain %q\n%s", fragment, page)
		}
	}
	if strings.Contains(page, "alert(1)") {
		t.Fatalf("expected description script to be stripped\n%s", page)
	}
}

func TestRenderer_AddsLibraryWhenSnippetOmitsIt(t *testing.T) {
	renderer, err := preview.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	builder := embed.NewInline("abc123").SetLoadLib(false, false)
	output, err := renderer.Render(testsupport.Context(), render.Embed{Name: "inline", Builder: builder})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(output), builder.LibHTML()) {
		t.Fatalf("expected library script in page\n%s", output)
	}
	if strings.Contains(string(output), "fe-preview__settings") {
		t.Fatalf("did not expect settings table without options\n%s", output)
	}
}

func TestRenderer_CustomTemplates(t *testing.T) {
	renderer, err := preview.New(preview.WithTemplatesFS(fstest.MapFS{
		"templates/page.tpl": {Data: []byte(`{{ title }}|{{ form_id }}|{{ type }}`)},
	}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), render.Embed{Builder: embed.NewInline("xyz")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(output); got != "xyz|xyz|inline" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderer_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	page := []byte(`{{ site_name }}|{{ name }}|{{ modal }}`)
	if err := os.WriteFile(filepath.Join(dir, "templates", "page.tpl"), page, 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	renderer, err := preview.New(preview.WithTemplatesDir(dir), preview.WithSiteName("Docs"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), render.Embed{Name: "chat", Builder: embed.NewModal("xyz")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(output); got != "Docs|chat|popup" {
		t.Fatalf("unexpected output %q", got)
	}

	if _, err := preview.New(preview.WithTemplatesDir(filepath.Join(dir, "missing"))); err == nil {
		t.Fatalf("expected error for missing templates directory")
	}
}

func TestRenderer_SiteName(t *testing.T) {
	renderer, err := preview.New(preview.WithSiteName("Handbook"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), render.Embed{Name: "hero", Title: "Hero", Builder: embed.NewInline("abc")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(output), "<title>Hero &middot; Handbook</title>") {
		t.Fatalf("expected site name in title\n%s", output)
	}
}

type recordingTemplates struct {
	globals map[string]any
	data    map[string]any
}

func (r *recordingTemplates) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	r.data, _ = data.(map[string]any)
	return name, nil
}

func (r *recordingTemplates) GlobalContext(data any) error {
	r.globals, _ = data.(map[string]any)
	return nil
}

func TestRenderer_CustomTemplateRenderer(t *testing.T) {
	templates := &recordingTemplates{}
	renderer, err := preview.New(preview.WithTemplateRenderer(templates), preview.WithSiteName("Docs"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if templates.globals["site_name"] != "Docs" {
		t.Fatalf("expected site name in globals, got %v", templates.globals)
	}

	output, err := renderer.Render(testsupport.Context(), render.Embed{Name: "hero", Builder: embed.NewInline("abc")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(output) != "templates/page.tpl" {
		t.Fatalf("unexpected template name %q", output)
	}
	if templates.data["form_id"] != "abc" {
		t.Fatalf("expected form id in page data, got %v", templates.data)
	}
}

func TestRenderer_RequiresBuilder(t *testing.T) {
	renderer, err := preview.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render(testsupport.Context(), render.Embed{Name: "x"}); err == nil {
		t.Fatalf("expected error for nil builder")
	}
}
