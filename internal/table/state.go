package table

import (
	"net/url"
	"strconv"
)

// Direction is a sort direction
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortConfig holds the active sort column. An empty Key means the rows keep their input order.
type SortConfig struct {
	Key       string    `json:"key,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// Active reports whether a sort column is selected
func (c SortConfig) Active() bool {
	return c.Key != ""
}

// State is the complete interaction state of one table instance.
//
// It travels in the query string, so every link a view produces is the state
// the table will be in after that interaction.
type State struct {
	Search   string     `json:"search"`
	Sort     SortConfig `json:"sort"`
	Page     int        `json:"page"`
	Expanded string     `json:"expanded,omitempty"`
	// Viewport is the client width passed explicitly in the query string, 0 when absent.
	// It is carried through every link so the layout survives navigation.
	Viewport int        `json:"viewport,omitempty"`
}

// Query parameter names used by State
const (
	ParamSearch    = "q"
	ParamSort      = "sort"
	ParamDirection = "dir"
	ParamPage      = "page"
	ParamExpanded  = "open"
	ParamViewport  = "vw"
)

// NewState returns the state of a freshly mounted table: no search, no sort, first page
func NewState() State {
	return State{Page: 1}
}

// ParseState reads a State from query values. Missing or invalid values fall back to
// the mount defaults.
func ParseState(values url.Values) State {
	s := NewState()
	s.Search = values.Get(ParamSearch)
	s.Expanded = values.Get(ParamExpanded)

	if key := values.Get(ParamSort); key != "" {
		s.Sort.Key = key
		s.Sort.Direction = Ascending
		if Direction(values.Get(ParamDirection)) == Descending {
			s.Sort.Direction = Descending
		}
	}

	if page, err := strconv.Atoi(values.Get(ParamPage)); err == nil && page > 1 {
		s.Page = page
	}

	if width, err := strconv.Atoi(values.Get(ParamViewport)); err == nil && width > 0 {
		s.Viewport = width
	}

	return s
}

// Values encodes the state as query values, omitting defaults
func (s State) Values() url.Values {
	values := url.Values{}
	if s.Search != "" {
		values.Set(ParamSearch, s.Search)
	}
	if s.Sort.Active() {
		values.Set(ParamSort, s.Sort.Key)
		values.Set(ParamDirection, string(s.Sort.Direction))
	}
	if s.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(s.Page))
	}
	if s.Expanded != "" {
		values.Set(ParamExpanded, s.Expanded)
	}
	if s.Viewport > 0 {
		values.Set(ParamViewport, strconv.Itoa(s.Viewport))
	}
	return values
}

// Link returns the state as a relative query-string link
func (s State) Link() string {
	encoded := s.Values().Encode()
	if encoded == "" {
		return "?"
	}
	return "?" + encoded
}

// WithSearch sets the search term. The current page is kept as it is.
func (s State) WithSearch(term string) State {
	s.Search = term
	return s
}

// ToggleSort applies a header click on a sortable column with the given key:
// the same key flips the direction, a different key starts ascending.
func (s State) ToggleSort(key string) State {
	if key == "" {
		return s
	}
	if s.Sort.Key == key {
		if s.Sort.Direction == Ascending {
			s.Sort.Direction = Descending
		} else {
			s.Sort.Direction = Ascending
		}
		return s
	}
	s.Sort = SortConfig{Key: key, Direction: Ascending}
	return s
}

// PrevPage moves one page back, staying on page 1 at the lower bound
func (s State) PrevPage() State {
	if s.Page > 1 {
		s.Page--
	}
	return s
}

// NextPage moves one page forward unless the current page is already the last of totalPages
func (s State) NextPage(totalPages int) State {
	if s.Page < totalPages {
		s.Page++
	}
	return s
}

// ToggleExpanded opens the card of the row with the given id.
// Only one card is open at a time: opening another row closes the previous one,
// and toggling the open row closes it.
func (s State) ToggleExpanded(id string) State {
	if s.Expanded == id {
		s.Expanded = ""
	} else {
		s.Expanded = id
	}
	return s
}
