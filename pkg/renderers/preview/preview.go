// Package preview renders a standalone HTML page that shows an embed live,
// next to its escaped source and a table of the options it carries. Pages are
// meant for reviewing embeds before they are pasted into a site.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formembed/pkg/embed"
	"github.com/goliatone/go-formembed/pkg/render"
	rendertemplate "github.com/goliatone/go-formembed/pkg/render/template"
	"github.com/goliatone/go-formembed/pkg/render/template/pongo"
)

// Name is the registry key of the preview renderer.
const Name = "preview"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	siteName         string
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	logger           *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/page.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk instead of the
// embedded bundle. Like WithTemplatesFS it must contain templates/page.tpl.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithSiteName labels every page with the site the embeds belong to.
func WithSiteName(name string) Option {
	return func(cfg *config) {
		cfg.siteName = name
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithPolicy replaces the sanitiser applied to embed descriptions.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
	logger    *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the preview renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		policy:     bluemonday.UGCPolicy(),
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	globals := map[string]any{"site_name": cfg.siteName}

	renderer := cfg.templateRenderer
	if renderer == nil {
		source := pongo.WithFS(cfg.templateFS)
		if cfg.templatesDir != "" {
			source = pongo.WithBaseDir(cfg.templatesDir)
		}
		engine, err := pongo.New(
			source,
			pongo.WithExtension(".tpl"),
			pongo.WithGlobalData(globals),
		)
		if err != nil {
			return nil, fmt.Errorf("preview renderer: configure template renderer: %w", err)
		}
		renderer = engine
	} else if err := renderer.GlobalContext(globals); err != nil {
		return nil, fmt.Errorf("preview renderer: apply site data: %w", err)
	}

	return &Renderer{
		templates: renderer,
		policy:    cfg.policy,
		logger:    cfg.logger.Named("preview"),
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, e render.Embed) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, errors.New("preview renderer: template renderer is nil")
	}
	if e.Builder == nil {
		return nil, errors.New("preview renderer: embed builder is nil")
	}

	result, err := r.templates.RenderTemplate(pageTemplate, r.pageData(e))
	if err != nil {
		return nil, fmt.Errorf("preview renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) pageData(e render.Embed) map[string]any {
	b := e.Builder

	title := strings.TrimSpace(e.Title)
	if title == "" {
		title = e.Name
	}
	if title == "" {
		title = b.FormID()
	}

	description := strings.TrimSpace(e.Description)
	if description != "" {
		sanitized := strings.TrimSpace(r.policy.Sanitize(description))
		if sanitized != description {
			r.logger.Debug("description sanitised",
				zap.String("embed", e.Name),
				zap.Int("before", len(description)),
				zap.Int("after", len(sanitized)),
			)
		}
		description = sanitized
	}

	modal := ""
	if b.Type() == embed.TypeModal {
		modal = string(b.ModalType())
	}

	// The live section needs the library even when the snippet omits it.
	library := ""
	if enabled, _ := b.LoadLib(); !enabled {
		library = b.LibHTML()
	}

	options := make([]map[string]any, 0, len(b.Options()))
	for _, opt := range b.Options() {
		options = append(options, map[string]any{"name": opt.Name, "value": opt.Value.Text()})
	}
	hidden := make([]map[string]any, 0, len(b.HiddenFields()))
	for _, field := range b.HiddenFields() {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	return map[string]any{
		"name":        e.Name,
		"title":       title,
		"description": description,
		"form_id":     b.FormID(),
		"type":        string(b.Type()),
		"modal":       modal,
		"snippet":     b.HTML(),
		"library":     library,
		"options":     options,
		"hidden":      hidden,
	}
}
