package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formembed/pkg/embed"
	"github.com/goliatone/go-formembed/pkg/manifest"
	"github.com/goliatone/go-formembed/pkg/render"
	"github.com/goliatone/go-formembed/pkg/renderers/preview"
	"github.com/goliatone/go-formembed/pkg/renderers/snippet"
)

const defaultRendererName = snippet.Name

// ErrEmbedNotFound is returned when a request names an embed the manifest
// store does not hold.
var ErrEmbedNotFound = errors.New("orchestrator: embed not found")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithStore injects an already loaded manifest store.
func WithStore(store *manifest.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithManifestFS loads every manifest document found in fsys. Ignored when a
// store is injected with WithStore.
func WithManifestFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.manifestFS = fsys
	}
}

// WithManifestFile loads a single manifest document. The path is resolved
// inside the WithManifestFS file system when one is set and on disk otherwise.
// Ignored when a store is injected with WithStore.
func WithManifestFile(path string) Option {
	return func(o *Orchestrator) {
		o.manifestFile = strings.TrimSpace(path)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = strings.TrimSpace(name)
	}
}

// WithTransformer registers a Transformer that adjusts builders after they
// are resolved and before they are rendered.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithPreviewOptions configures the preview renderer of the default
// registry. Ignored when a registry is injected with WithRegistry.
func WithPreviewOptions(options ...preview.Option) Option {
	return func(o *Orchestrator) {
		o.previewOptions = append(o.previewOptions, options...)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Transformer mutates a resolved builder. name is the embed name and may be
// empty for requests that carry their own builder.
type Transformer interface {
	Transform(ctx context.Context, name string, b *embed.Builder) error
}

// TransformerFunc adapts a function to Transformer.
type TransformerFunc func(ctx context.Context, name string, b *embed.Builder) error

func (fn TransformerFunc) Transform(ctx context.Context, name string, b *embed.Builder) error {
	return fn(ctx, name, b)
}

// Orchestrator resolves embeds from a manifest store or from the request
// itself and hands them to a named renderer. Defaults register the snippet
// and preview renderers with snippet as the fallback.
type Orchestrator struct {
	store           *manifest.Store
	manifestFS      fs.FS
	manifestFile    string
	registry        *render.Registry
	defaultRenderer string
	transformers    []Transformer
	previewOptions  []preview.Option
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Loading and
// renderer construction errors surface on the first Generate call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request selects the embed to render. Builder takes precedence over
// Definition, which takes precedence over Name.
type Request struct {
	// Name looks up a definition in the manifest store.
	Name string

	// Definition bypasses the store.
	Definition *manifest.Definition

	// Builder renders an already configured builder. It is cloned before
	// transformers run so the caller's copy is left untouched.
	Builder *embed.Builder

	// Title and Description accompany Builder for renderers that show them.
	// For Name and Definition requests, non-empty values replace the
	// definition's own.
	Title       string
	Description string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string
}

// Output is one rendered embed.
type Output struct {
	Name        string
	Renderer    string
	ContentType string
	Body        []byte
}

// Generate resolves the requested embed and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	out, err := o.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// GenerateAll renders every embed in the store, in declaration order, with
// the named renderer (or the default one).
func (o *Orchestrator) GenerateAll(ctx context.Context, rendererName string) ([]Output, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	if o.store.Empty() {
		return nil, errors.New("orchestrator: manifest defines no embeds")
	}

	names := o.store.Names()
	outputs := make([]Output, 0, len(names))
	for _, name := range names {
		out, err := o.generate(ctx, Request{Name: name, Renderer: rendererName})
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// Store exposes the loaded manifest store. It is never nil once New returns
// without an initialisation error.
func (o *Orchestrator) Store() *manifest.Store {
	return o.store
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) generate(ctx context.Context, req Request) (Output, error) {
	if err := o.ready(ctx); err != nil {
		return Output{}, err
	}

	e, err := o.resolveEmbed(req)
	if err != nil {
		return Output{}, err
	}
	if err := o.applyTransformers(ctx, e.Name, e.Builder); err != nil {
		return Output{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Output{}, err
	}

	body, err := renderer.Render(ctx, e)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render embed %q: %w", e.Name, err)
	}

	o.logger.Debug("embed rendered",
		zap.String("embed", e.Name),
		zap.String("renderer", renderer.Name()),
		zap.String("form", e.Builder.FormID()),
		zap.Int("bytes", len(body)),
	)

	return Output{
		Name:        e.Name,
		Renderer:    renderer.Name(),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveEmbed(req Request) (render.Embed, error) {
	if req.Builder != nil {
		return render.Embed{
			Name:        strings.TrimSpace(req.Name),
			Title:       req.Title,
			Description: req.Description,
			Builder:     req.Builder.Clone(),
		}, nil
	}

	var def manifest.Definition
	switch {
	case req.Definition != nil:
		def = *req.Definition
	case strings.TrimSpace(req.Name) != "":
		found, ok := o.store.Definition(req.Name)
		if !ok {
			return render.Embed{}, fmt.Errorf("%w: %q", ErrEmbedNotFound, req.Name)
		}
		def = found
	default:
		return render.Embed{}, errors.New("orchestrator: embed name, definition or builder is required")
	}

	builder, err := def.Builder()
	if err != nil {
		return render.Embed{}, fmt.Errorf("orchestrator: build embed: %w", err)
	}
	e := render.Embed{
		Name:        def.Name,
		Title:       def.DisplayTitle(),
		Description: def.Description,
		Builder:     builder,
	}
	if title := strings.TrimSpace(req.Title); title != "" {
		e.Title = title
	}
	if req.Description != "" {
		e.Description = req.Description
	}
	return e, nil
}

func (o *Orchestrator) applyTransformers(ctx context.Context, name string, b *embed.Builder) error {
	for _, t := range o.transformers {
		if err := t.Transform(ctx, name, b); err != nil {
			return fmt.Errorf("orchestrator: transform embed %q: %w", name, err)
		}
	}
	return nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := strings.TrimSpace(name)
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	o.logger.Warn("default renderer unavailable, falling back",
		zap.String("wanted", target),
		zap.String("using", names[0]),
	)
	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	o.logger = o.logger.Named("orchestrator")

	if o.registry == nil {
		registry, err := defaultRegistry(o.logger, o.previewOptions)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	if o.store == nil {
		store, err := o.loadStore()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load manifest: %w", err)
			return
		}
		o.store = store
	}
	o.logger.Debug("orchestrator ready",
		zap.Strings("embeds", o.store.Names()),
		zap.Strings("renderers", o.registry.List()),
	)
}

func (o *Orchestrator) loadStore() (*manifest.Store, error) {
	if o.manifestFile == "" {
		return manifest.LoadFS(o.manifestFS)
	}
	if o.manifestFS != nil {
		return manifest.Load(manifest.SourceFromFS(o.manifestFile), o.manifestFS)
	}
	return manifest.LoadFile(o.manifestFile)
}

func defaultRegistry(logger *zap.Logger, options []preview.Option) (*render.Registry, error) {
	page, err := preview.New(append([]preview.Option{preview.WithLogger(logger)}, options...)...)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(snippet.New(), page)
}
