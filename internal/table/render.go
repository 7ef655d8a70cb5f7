package table

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var tableTemplate = template.Must(template.New("table.html").ParseFS(templateFS, "templates/table.html"))

// Render writes the view as an HTML fragment: a table for wide viewports,
// a list of expandable cards for narrow ones.
func (t *Table[T]) Render(w io.Writer, view View[T]) error {
	if err := tableTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
