// Package snippet renders the bare embed markup, ready to paste into a page.
package snippet

import (
	"context"
	"errors"

	"github.com/goliatone/go-formembed/pkg/render"
)

// Name is the registry key of the snippet renderer.
const Name = "snippet"

// Renderer emits embed.Builder.HTML unchanged.
type Renderer struct{}

var _ render.Renderer = Renderer{}

// New returns the snippet renderer.
func New() Renderer {
	return Renderer{}
}

func (Renderer) Name() string {
	return Name
}

func (Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (Renderer) Render(ctx context.Context, e render.Embed) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.Builder == nil {
		return nil, errors.New("snippet renderer: embed builder is nil")
	}
	return []byte(e.Builder.HTML()), nil
}
