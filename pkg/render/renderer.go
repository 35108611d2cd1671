package render

import (
	"context"

	"github.com/goliatone/go-formembed/pkg/embed"
)

// Embed is the unit handed to renderers: a configured builder plus the
// presentation metadata some renderers surface.
type Embed struct {
	Name        string
	Title       string
	Description string
	Builder     *embed.Builder
}

// Renderer converts an Embed into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, e Embed) ([]byte, error)
}
