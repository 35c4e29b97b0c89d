package admin

import (
	"embed"
	"fmt"
	"io/fs"

	template "github.com/goliatone/go-template"
)

//go:embed templates/*.html templates/fragments/*.html
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded templates rooted at the templates directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewTemplateRenderer creates a go-template renderer backed by the embedded
// templates, with the helpers bound to the given catalogue (nil uses the
// embedded one).
func NewTemplateRenderer(catalog *Catalog) (Renderer, error) {
	engine, err := template.NewRenderer(
		template.WithFS(TemplatesFS()),
		template.WithExtension(".html"),
		template.WithTemplateFunc(TemplateFuncs(catalog)),
	)
	if err != nil {
		return nil, fmt.Errorf("admin: load templates: %w", err)
	}
	return engine, nil
}
