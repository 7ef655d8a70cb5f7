package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/academyhub/backend/internal/table"
	"go.uber.org/zap"
)

// tableEndpoint serves one row source through a configured table as JSON, as an
// HTML page and as a CSV file. The table state always comes from the query string.
type tableEndpoint[T table.Row] struct {
	base  *BaseHandler
	name  string
	title string
	table *table.Table[T]
	load  func(ctx context.Context) ([]T, error)
}

func (e *tableEndpoint[T]) rows(w http.ResponseWriter, r *http.Request) ([]T, bool) {
	rows, err := e.load(r.Context())
	if err != nil {
		e.base.Logger.Error("failed to load table rows", zap.String("table", e.name), zap.Error(err))
		e.base.RespondError(w, http.StatusInternalServerError, "failed to get "+e.name)
		return nil, false
	}
	return rows, true
}

// View responds with the current page of the table as JSON
func (e *tableEndpoint[T]) View(w http.ResponseWriter, r *http.Request) {
	rows, ok := e.rows(w, r)
	if !ok {
		return
	}
	state := table.ParseState(r.URL.Query())
	e.base.RespondJSON(w, http.StatusOK, e.table.View(rows, state, viewportWidth(r)))
}

// Page responds with the current page of the table as HTML
func (e *tableEndpoint[T]) Page(w http.ResponseWriter, r *http.Request) {
	rows, ok := e.rows(w, r)
	if !ok {
		return
	}
	view := e.table.View(rows, table.ParseState(r.URL.Query()), viewportWidth(r))
	w.Header().Set("Vary", "Sec-CH-Viewport-Width, Viewport-Width")
	e.base.RespondHTML(w, func(buf io.Writer) error {
		return writePage(buf, e.title, e.title, func(w io.Writer) error {
			return e.table.Render(w, view)
		})
	})
}

// Export responds with every row matching the search, in the requested order, as CSV
func (e *tableEndpoint[T]) Export(w http.ResponseWriter, r *http.Request) {
	rows, ok := e.rows(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, e.name))
	w.WriteHeader(http.StatusOK)
	if err := e.table.Export(w, rows, table.ParseState(r.URL.Query())); err != nil {
		e.base.Logger.Error("failed to export table", zap.String("table", e.name), zap.Error(err))
	}
}
