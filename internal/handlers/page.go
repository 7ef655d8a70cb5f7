package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/academyhub/backend/internal/table"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").ParseFS(templateFS, "templates/page.html"))

type pageData struct {
	Title   string
	Heading string
	Body    template.HTML
}

// writePage wraps an HTML fragment produced by body into the site layout.
// heading may be empty when the fragment carries its own.
func writePage(w io.Writer, title, heading string, body func(w io.Writer) error) error {
	var fragment bytes.Buffer
	if err := body(&fragment); err != nil {
		return err
	}
	data := pageData{
		Title:   title,
		Heading: heading,
		// The fragment comes from our own escaping templates
		Body: template.HTML(fragment.String()),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render page layout: %w", err)
	}
	return nil
}

// viewportWidth reads the client viewport width in CSS pixels from the "vw" query
// parameter or the viewport client hints. It returns 0 when the width is unknown.
func viewportWidth(r *http.Request) int {
	for _, raw := range []string{
		r.URL.Query().Get(table.ParamViewport),
		r.Header.Get("Sec-CH-Viewport-Width"),
		r.Header.Get("Viewport-Width"),
	} {
		if raw == "" {
			continue
		}
		if width, err := strconv.Atoi(raw); err == nil && width > 0 {
			return width
		}
	}
	return 0
}
