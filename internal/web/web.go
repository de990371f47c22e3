// Package web bundles the HTML templates and static assets of the site.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/http"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"humanize": func(n uint64) string {
		if n > math.MaxInt64 {
			return humanize.Comma(math.MaxInt64)
		}
		return humanize.Comma(int64(n))
	},
}

// Templates parses every page template together with the shared layout.
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(Funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: failed to parse templates: %w", err)
	}
	return t, nil
}

// Static serves the files under static/.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return http.FS(sub)
}
