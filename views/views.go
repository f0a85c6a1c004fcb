// Package views renders the server-side HTML pages.
package views

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Ankitshukla6121/pizzapal/logger"
)

// Renderer executes named page templates.
type Renderer struct {
	templates *template.Template
	log       *logger.Logger
}

// New parses every template matching the glob pattern, e.g.
// "templates/*.html". Template names are the file base names.
func New(pattern string, log *logger.Logger) (*Renderer, error) {
	templates, err := template.ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: templates, log: log}, nil
}

// Render writes the named template to the response. Pages render into
// a buffer first so a mid-render failure yields a clean 500 instead
// of a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		if r.log != nil {
			r.log.Errorw("render_failed", "template", name, "err", err)
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
