package preview

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// pageTemplate is the template path rendered for each embed.
const pageTemplate = "templates/page.tpl"

// TemplatesFS exposes the embedded preview templates so callers can copy or
// override them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
