// Package templates holds the HTML templates of the archive and renders them.
package templates

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"time"
)

//go:embed archive/*.html
var templatesFS embed.FS

const (
	IndexTemplate         = "index.html"
	SingleMessageTemplate = "single_message.html"
)

var funcs = template.FuncMap{
	"isoTime": func(timestamp int64) string {
		return time.Unix(timestamp, 0).UTC().Format(time.RFC3339)
	},
	"displayTime": func(timestamp int64) string {
		return time.Unix(timestamp, 0).UTC().Format("Jan 2, 2006 15:04")
	},
}

type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses every embedded template once.
// The parsed set is safe for concurrent use.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("archive").Funcs(funcs).ParseFS(templatesFS, "archive/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

// RenderToString renders a template into an already escaped HTML fragment,
// ready to be embedded in another template.
func (r *Renderer) RenderToString(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
