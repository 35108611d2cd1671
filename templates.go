package formembed

import (
	"io/fs"

	"github.com/goliatone/go-formembed/pkg/renderers/preview"
)

// EmbeddedTemplates exposes the built-in preview page templates so callers
// can copy or extend them and pass the result to preview.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return preview.TemplatesFS()
}
