package formembed

import (
	"context"

	"github.com/goliatone/go-formembed/pkg/embed"
	"github.com/goliatone/go-formembed/pkg/manifest"
	"github.com/goliatone/go-formembed/pkg/orchestrator"
)

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewEmbed returns a builder for form rendered as typ.
func NewEmbed(form embed.Form, typ embed.Type) (*embed.Builder, error) {
	return embed.New(form, typ)
}

// GenerateHTML loads the manifest at path and renders the named embed with
// the named renderer. An empty renderer name selects the snippet renderer.
func GenerateHTML(ctx context.Context, path, name, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	opts := append([]orchestrator.Option{orchestrator.WithManifestFile(path)}, options...)
	gen := orchestrator.New(opts...)
	return gen.Generate(ctx, orchestrator.Request{
		Name:     name,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromDefinition renders a definition without reading a manifest.
func GenerateHTMLFromDefinition(ctx context.Context, def manifest.Definition, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Definition: &def,
		Renderer:   rendererName,
	})
}
