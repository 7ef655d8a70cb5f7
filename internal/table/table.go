// Package table provides a reusable in-memory table view: free-text search,
// single-column sort, fixed-size pagination and a card layout for narrow viewports.
package table

import (
	"slices"
	"strings"
)

const (
	// DefaultPageSize is the number of rows on one page
	DefaultPageSize = 10
	// DefaultBreakpoint is the viewport width (px) below which rows render as cards
	DefaultBreakpoint = 768
	// DefaultEmptyMessage is shown when the current page has no rows
	DefaultEmptyMessage = "No results found"
)

// Row is a record that can be shown in a table. RowID must be unique within a data slice.
type Row interface {
	RowID() string
}

// Column describes one table column.
//
// Key names a field of the row (its JSON name). Accessor, when set, produces the
// displayed value instead of the field. Only columns with a Key can be sorted:
// an Accessor is used for display only.
type Column[T Row] struct {
	Header   string
	Key      string
	Accessor func(T) string
	Sortable bool
}

// CanSort reports whether header clicks on this column change the sort
func (c Column[T]) CanSort() bool {
	return c.Sortable && c.Key != ""
}

// Value returns the displayed value of the column for a row
func (c Column[T]) Value(row T) string {
	if c.Accessor != nil {
		return c.Accessor(row)
	}
	v, _ := fieldValue(row, c.Key)
	return stringValue(v)
}

// Action is one entry of a row's action cluster
type Action struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

// Layout selects how rows are rendered
type Layout string

const (
	LayoutTable Layout = "table"
	LayoutCards Layout = "cards"
)

// Table is a configured table instance. It never modifies the rows it is given.
type Table[T Row] struct {
	columns      []Column[T]
	rowActions   func(T) []Action
	emptyMessage string
	breakpoint   int
	pageSize     int
}

// Option configures a Table
type Option[T Row] func(*Table[T])

// WithRowActions sets the function that builds the action cluster of each row
func WithRowActions[T Row](fn func(T) []Action) Option[T] {
	return func(t *Table[T]) {
		t.rowActions = fn
	}
}

// WithEmptyMessage overrides the empty-state message
func WithEmptyMessage[T Row](msg string) Option[T] {
	return func(t *Table[T]) {
		t.emptyMessage = msg
	}
}

// WithBreakpoint overrides the card-layout breakpoint
func WithBreakpoint[T Row](px int) Option[T] {
	return func(t *Table[T]) {
		t.breakpoint = px
	}
}

// WithPageSize overrides the page size
func WithPageSize[T Row](size int) Option[T] {
	return func(t *Table[T]) {
		if size > 0 {
			t.pageSize = size
		}
	}
}

// New creates a table with the given columns. It panics when columns is empty,
// since the first column is the card summary.
func New[T Row](columns []Column[T], opts ...Option[T]) *Table[T] {
	if len(columns) == 0 {
		panic("table: at least one column is required")
	}

	t := &Table[T]{
		columns:      slices.Clone(columns),
		emptyMessage: DefaultEmptyMessage,
		breakpoint:   DefaultBreakpoint,
		pageSize:     DefaultPageSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Columns returns the configured columns
func (t *Table[T]) Columns() []Column[T] {
	return slices.Clone(t.columns)
}

// ClickHeader applies a click on the header of the column at index.
// Clicks on non-sortable columns and out-of-range indexes leave the state unchanged.
func (t *Table[T]) ClickHeader(s State, index int) State {
	if index < 0 || index >= len(t.columns) || !t.columns[index].CanSort() {
		return s
	}
	return s.ToggleSort(t.columns[index].Key)
}

// sortable reports whether key belongs to a sortable column
func (t *Table[T]) sortable(key string) bool {
	for _, c := range t.columns {
		if c.CanSort() && c.Key == key {
			return true
		}
	}
	return false
}

// Filter returns the rows for which the string form of any field contains term,
// compared case-insensitively. The term is matched literally.
func Filter[T Row](rows []T, term string) []T {
	if term == "" {
		return slices.Clone(rows)
	}

	needle := strings.ToLower(term)
	filtered := make([]T, 0, len(rows))
	for _, row := range rows {
		if matches(row, needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func matches(row any, needle string) bool {
	for _, v := range rowValues(row) {
		if strings.Contains(strings.ToLower(stringValue(v)), needle) {
			return true
		}
	}
	return false
}

// Sort returns a stably sorted copy of rows ordered by the field named in cfg.
// An inactive config returns the rows in their input order.
func Sort[T Row](rows []T, cfg SortConfig) []T {
	sorted := slices.Clone(rows)
	if !cfg.Active() {
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b T) int {
		va, _ := fieldValue(a, cfg.Key)
		vb, _ := fieldValue(b, cfg.Key)
		c := compareValues(va, vb)
		if cfg.Direction == Descending {
			return -c
		}
		return c
	})
	return sorted
}

// PageInfo describes the position of the current page
type PageInfo struct {
	Current    int    `json:"current"`
	Total      int    `json:"total"`
	Size       int    `json:"size"`
	TotalItems int    `json:"totalItems"`
	From       int    `json:"from"`
	To         int    `json:"to"`
	HasPrev    bool   `json:"hasPrev"`
	HasNext    bool   `json:"hasNext"`
	PrevLink   string `json:"prevLink,omitempty"`
	NextLink   string `json:"nextLink,omitempty"`
}

// Paginate returns the rows of the given 1-based page and its position.
// A page past the end yields no rows; it is not clamped.
func Paginate[T Row](rows []T, page, size int) ([]T, PageInfo) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	n := len(rows)
	info := PageInfo{
		Current:    page,
		Total:      (n + size - 1) / size,
		Size:       size,
		TotalItems: n,
	}
	info.HasPrev = page > 1
	info.HasNext = page < info.Total

	start := (page - 1) * size
	if start >= n {
		return []T{}, info
	}
	end := min(start+size, n)

	info.From = start + 1
	info.To = end
	return slices.Clone(rows[start:end]), info
}

// Header is a rendered column header
type Header struct {
	Label     string    `json:"label"`
	Key       string    `json:"key,omitempty"`
	Sortable  bool      `json:"sortable"`
	Active    bool      `json:"active"`
	Direction Direction `json:"direction,omitempty"`
	Link      string    `json:"link,omitempty"`
}

// Cell is a label/value pair of one row
type Cell struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RowView is a rendered row
type RowView[T Row] struct {
	ID         string   `json:"id"`
	Row        T        `json:"row"`
	Summary    string   `json:"summary"`
	Cells      []Cell   `json:"cells"`
	Actions    []Action `json:"actions,omitempty"`
	Expanded   bool     `json:"expanded"`
	ToggleLink string   `json:"toggleLink"`
}

// View is everything needed to render one state of a table
type View[T Row] struct {
	Headers      []Header     `json:"headers"`
	Rows         []RowView[T] `json:"rows"`
	Page         PageInfo     `json:"page"`
	Layout       Layout       `json:"layout"`
	State        State        `json:"state"`
	HasActions   bool         `json:"hasActions"`
	ColumnCount  int          `json:"columnCount"`
	Empty        bool         `json:"empty"`
	EmptyMessage string       `json:"emptyMessage,omitempty"`
}

// LayoutFor returns the layout for a viewport width. Zero or negative widths mean
// the width is unknown and use the table layout.
func (t *Table[T]) LayoutFor(viewportWidth int) Layout {
	if viewportWidth > 0 && viewportWidth < t.breakpoint {
		return LayoutCards
	}
	return LayoutTable
}

// Rows returns the filtered and sorted rows for a state, across all pages
func (t *Table[T]) Rows(rows []T, s State) []T {
	filtered := Filter(rows, s.Search)
	if !s.Sort.Active() || !t.sortable(s.Sort.Key) {
		return filtered
	}
	return Sort(filtered, s.Sort)
}

// View derives the visible page for a state: filter, then sort, then paginate.
func (t *Table[T]) View(rows []T, s State, viewportWidth int) View[T] {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Sort.Active() && !t.sortable(s.Sort.Key) {
		s.Sort = SortConfig{}
	}

	pageRows, info := Paginate(t.Rows(rows, s), s.Page, t.pageSize)
	if info.HasPrev {
		info.PrevLink = s.PrevPage().Link()
	}
	if info.HasNext {
		info.NextLink = s.NextPage(info.Total).Link()
	}

	view := View[T]{
		Headers:    make([]Header, 0, len(t.columns)),
		Rows:       make([]RowView[T], 0, len(pageRows)),
		Page:       info,
		Layout:     t.LayoutFor(viewportWidth),
		State:      s,
		HasActions: t.rowActions != nil,
	}
	view.ColumnCount = len(t.columns)
	if view.HasActions {
		view.ColumnCount++
	}

	for i, c := range t.columns {
		h := Header{Label: c.Header, Key: c.Key, Sortable: c.CanSort()}
		if h.Sortable {
			h.Link = t.ClickHeader(s, i).Link()
			if s.Sort.Key == c.Key {
				h.Active = true
				h.Direction = s.Sort.Direction
			}
		}
		view.Headers = append(view.Headers, h)
	}

	for _, row := range pageRows {
		rv := RowView[T]{
			ID:         row.RowID(),
			Row:        row,
			Cells:      make([]Cell, 0, len(t.columns)),
			Expanded:   s.Expanded != "" && s.Expanded == row.RowID(),
			ToggleLink: s.ToggleExpanded(row.RowID()).Link(),
		}
		for _, c := range t.columns {
			rv.Cells = append(rv.Cells, Cell{Label: c.Header, Value: c.Value(row)})
		}
		rv.Summary = rv.Cells[0].Value
		if t.rowActions != nil {
			rv.Actions = t.rowActions(row)
		}
		view.Rows = append(view.Rows, rv)
	}

	if len(view.Rows) == 0 {
		view.Empty = true
		view.EmptyMessage = t.emptyMessage
	}

	return view
}
