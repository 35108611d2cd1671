package template

import (
	"io"
)

// TemplateRenderer renders named templates. When writers are supplied the
// result is also written to each of them.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
