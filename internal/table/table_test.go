package table

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	City   string  `json:"city"`
	Age    int     `json:"age"`
	Note   *string `json:"note,omitempty"`
	secret string
}

func (p person) RowID() string { return strconv.Itoa(p.ID) }

func people(n int) []person {
	rows := make([]person, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, person{ID: i, Name: fmt.Sprintf("Person %02d", i), City: "Madrid", Age: 20 + i%7})
	}
	return rows
}

func ids(rows []person) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func personColumns() []Column[person] {
	return []Column[person]{
		{Header: "Name", Key: "name", Sortable: true},
		{Header: "City", Key: "city", Sortable: false},
		{Header: "Age", Key: "age", Sortable: true},
		{Header: "Label", Accessor: func(p person) string { return p.Name + " (" + p.City + ")" }, Sortable: true},
	}
}

func TestFilter(t *testing.T) {
	note := "likes Chess"
	rows := []person{
		{ID: 1, Name: "Ana", City: "Sevilla"},
		{ID: 2, Name: "Luis", City: "Bilbao"},
		{ID: 3, Name: "Marta", City: "Valencia", Note: &note, secret: "ana"},
		{ID: 12, Name: "Pedro", City: "Cádiz", Age: 41},
	}

	tests := []struct {
		name        string
		term        string
		expectedIDs []int
	}{
		{name: "case-insensitive substring", term: "an", expectedIDs: []int{1}},
		{name: "upper case term", term: "BIL", expectedIDs: []int{2}},
		{name: "matches numeric fields", term: "12", expectedIDs: []int{12}},
		{name: "matches dereferenced pointer", term: "chess", expectedIDs: []int{3}},
		{name: "unexported fields are not searched", term: "ana", expectedIDs: []int{1}},
		{name: "no regex interpretation", term: "a.a", expectedIDs: []int{}},
		{name: "empty term keeps all", term: "", expectedIDs: []int{1, 2, 3, 12}},
		{name: "no match", term: "zzz", expectedIDs: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Filter(rows, tt.term)
			assert.Equal(t, tt.expectedIDs, ids(result))
		})
	}
}

func TestFilter_ResultIsSubsetMatchingTerm(t *testing.T) {
	rows := people(30)
	rows[4].City = "Toledo"
	rows[17].City = "toledo norte"

	for _, term := range []string{"toledo", "Person 1", "2", "madrid", "x"} {
		result := Filter(rows, term)
		included := map[int]bool{}
		for _, r := range result {
			included[r.ID] = true
			assert.True(t, matches(r, strings.ToLower(term)), "row %d should match %q", r.ID, term)
		}
		for _, r := range rows {
			if !included[r.ID] {
				assert.False(t, matches(r, strings.ToLower(term)), "row %d should not match %q", r.ID, term)
			}
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	rows := people(3)
	original := append([]person{}, rows...)

	_ = Filter(rows, "Person 02")
	_ = Sort(rows, SortConfig{Key: "name", Direction: Descending})

	assert.Equal(t, original, rows)
}

func TestSort(t *testing.T) {
	rows := []person{
		{ID: 1, Name: "Carla", Age: 30},
		{ID: 2, Name: "ana", Age: 9},
		{ID: 3, Name: "Bruno", Age: 30},
		{ID: 4, Name: "Alba", Age: 100},
	}

	tests := []struct {
		name        string
		cfg         SortConfig
		expectedIDs []int
	}{
		{name: "no sort keeps order", cfg: SortConfig{}, expectedIDs: []int{1, 2, 3, 4}},
		{name: "strings lexicographic", cfg: SortConfig{Key: "name", Direction: Ascending}, expectedIDs: []int{4, 3, 1, 2}},
		{name: "strings descending", cfg: SortConfig{Key: "name", Direction: Descending}, expectedIDs: []int{2, 1, 3, 4}},
		{name: "numbers numeric and stable", cfg: SortConfig{Key: "age", Direction: Ascending}, expectedIDs: []int{2, 1, 3, 4}},
		{name: "numbers descending stable", cfg: SortConfig{Key: "age", Direction: Descending}, expectedIDs: []int{4, 1, 3, 2}},
		{name: "unknown key keeps order", cfg: SortConfig{Key: "missing", Direction: Ascending}, expectedIDs: []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedIDs, ids(Sort(rows, tt.cfg)))
		})
	}
}

func TestSort_DescendingReversesAscending(t *testing.T) {
	rows := people(15)
	tbl := New(personColumns())

	s := tbl.ClickHeader(NewState(), 0)
	asc := tbl.Rows(rows, s)
	s = tbl.ClickHeader(s, 0)
	desc := tbl.Rows(rows, s)

	require.Equal(t, Descending, s.Sort.Direction)
	reversed := append([]person{}, desc...)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	assert.Equal(t, ids(asc), ids(reversed))
}

func TestCompareValues(t *testing.T) {
	assert.Equal(t, -1, compareValues(2, 10))
	assert.Equal(t, 1, compareValues("2", "10"))
	assert.Equal(t, -1, compareValues(1.5, 2))
	assert.Equal(t, -1, compareValues(false, true))
	assert.Equal(t, 0, compareValues(nil, nil))
	assert.Equal(t, -1, compareValues(nil, "a"))
	assert.Equal(t, compareValues("10", 9), -compareValues(9, "10"))
}

func TestClickHeader(t *testing.T) {
	tbl := New(personColumns())

	t.Run("first click sorts ascending", func(t *testing.T) {
		s := tbl.ClickHeader(NewState(), 0)
		assert.Equal(t, SortConfig{Key: "name", Direction: Ascending}, s.Sort)
	})

	t.Run("same column toggles direction", func(t *testing.T) {
		s := tbl.ClickHeader(NewState(), 2)
		s = tbl.ClickHeader(s, 2)
		assert.Equal(t, Descending, s.Sort.Direction)
		s = tbl.ClickHeader(s, 2)
		assert.Equal(t, Ascending, s.Sort.Direction)
	})

	t.Run("switching column resets to ascending", func(t *testing.T) {
		s := tbl.ClickHeader(NewState(), 0)
		s = tbl.ClickHeader(s, 0)
		s = tbl.ClickHeader(s, 2)
		assert.Equal(t, SortConfig{Key: "age", Direction: Ascending}, s.Sort)
	})

	t.Run("non-sortable column is a no-op", func(t *testing.T) {
		s := tbl.ClickHeader(NewState(), 0)
		assert.Equal(t, s, tbl.ClickHeader(s, 1))
	})

	t.Run("accessor column without key is a no-op", func(t *testing.T) {
		s := NewState()
		assert.Equal(t, s, tbl.ClickHeader(s, 3))
	})

	t.Run("out of range index is a no-op", func(t *testing.T) {
		s := NewState()
		assert.Equal(t, s, tbl.ClickHeader(s, 99))
		assert.Equal(t, s, tbl.ClickHeader(s, -1))
	})
}

func TestPaginate(t *testing.T) {
	rows := people(25)

	page1, info := Paginate(rows, 1, 10)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(page1))
	assert.Equal(t, 3, info.Total)
	assert.False(t, info.HasPrev)
	assert.True(t, info.HasNext)
	assert.Equal(t, 1, info.From)
	assert.Equal(t, 10, info.To)

	last, info := Paginate(rows, 3, 10)
	assert.Equal(t, []int{21, 22, 23, 24, 25}, ids(last))
	assert.True(t, info.HasPrev)
	assert.False(t, info.HasNext)
	assert.Equal(t, 21, info.From)
	assert.Equal(t, 25, info.To)

	for n := 0; n <= 31; n++ {
		_, info := Paginate(people(n), 1, 10)
		assert.Equal(t, (n+9)/10, info.Total, "rows=%d", n)
	}
}

func TestState_NextPageStopsAtLastPage(t *testing.T) {
	s := NewState()
	for range 10 {
		s = s.NextPage(3)
	}
	assert.Equal(t, 3, s.Page)

	s = s.PrevPage().PrevPage().PrevPage().PrevPage()
	assert.Equal(t, 1, s.Page)
}

func TestView_EmptyData(t *testing.T) {
	tbl := New(personColumns())

	view := tbl.View(nil, NewState(), 0)

	assert.True(t, view.Empty)
	assert.Equal(t, DefaultEmptyMessage, view.EmptyMessage)
	assert.Empty(t, view.Rows)
	assert.Equal(t, 0, view.Page.TotalItems)
	assert.Equal(t, 0, view.Page.Total)
	assert.Equal(t, 0, view.Page.From)
	assert.Equal(t, 0, view.Page.To)
	assert.False(t, view.Page.HasPrev)
	assert.False(t, view.Page.HasNext)
}

func TestView_SearchScenario(t *testing.T) {
	rows := []namedRow{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Luis"}}
	tbl := New([]Column[namedRow]{{Header: "Name", Key: "name", Sortable: true}})

	view := tbl.View(rows, NewState().WithSearch("an"), 0)

	require.Len(t, view.Rows, 1)
	assert.Equal(t, namedRow{ID: 1, Name: "Ana"}, view.Rows[0].Row)
	assert.False(t, view.Empty)
}

type namedRow struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (n namedRow) RowID() string { return strconv.Itoa(n.ID) }

func TestView_SearchKeepsCurrentPage(t *testing.T) {
	tbl := New(personColumns(), WithEmptyMessage[person]("Nothing here"))
	rows := people(30)

	s := NewState().NextPage(3).NextPage(3)
	require.Equal(t, 3, s.Page)

	view := tbl.View(rows, s.WithSearch("Person 0"), 0)

	assert.Equal(t, 3, view.State.Page)
	assert.Equal(t, 1, view.Page.Total)
	assert.True(t, view.Empty)
	assert.Equal(t, "Nothing here", view.EmptyMessage)
	assert.True(t, view.Page.HasPrev)
	assert.False(t, view.Page.HasNext)
}

func TestView_HeadersAndLinks(t *testing.T) {
	tbl := New(personColumns())
	s := NewState().ToggleSort("age")

	view := tbl.View(people(12), s, 0)

	require.Len(t, view.Headers, 4)
	assert.True(t, view.Headers[2].Active)
	assert.Equal(t, Ascending, view.Headers[2].Direction)
	assert.False(t, view.Headers[1].Sortable)
	assert.Empty(t, view.Headers[1].Link)

	link, err := url.ParseQuery(strings.TrimPrefix(view.Headers[2].Link, "?"))
	require.NoError(t, err)
	assert.Equal(t, "desc", link.Get(ParamDirection))

	next, err := url.ParseQuery(strings.TrimPrefix(view.Page.NextLink, "?"))
	require.NoError(t, err)
	assert.Equal(t, "2", next.Get(ParamPage))
	assert.Equal(t, "age", next.Get(ParamSort))
}

func TestView_IgnoresSortOnNonSortableKey(t *testing.T) {
	tbl := New(personColumns())
	rows := []person{{ID: 2, City: "B"}, {ID: 1, City: "A"}}

	view := tbl.View(rows, State{Page: 1, Sort: SortConfig{Key: "city", Direction: Ascending}}, 0)

	assert.Equal(t, "2", view.Rows[0].ID)
	assert.False(t, view.State.Sort.Active())
}

func TestView_RowActionsAndCells(t *testing.T) {
	tbl := New(personColumns(), WithRowActions(func(p person) []Action {
		return []Action{{Label: "Edit", Href: "/people/" + p.RowID()}}
	}))

	view := tbl.View([]person{{ID: 7, Name: "Eva", City: "Lugo", Age: 33}}, NewState(), 0)

	require.Len(t, view.Rows, 1)
	row := view.Rows[0]
	assert.True(t, view.HasActions)
	assert.Equal(t, "Eva", row.Summary)
	assert.Equal(t, []Cell{
		{Label: "Name", Value: "Eva"},
		{Label: "City", Value: "Lugo"},
		{Label: "Age", Value: "33"},
		{Label: "Label", Value: "Eva (Lugo)"},
	}, row.Cells)
	assert.Equal(t, []Action{{Label: "Edit", Href: "/people/7"}}, row.Actions)
}

func TestToggleExpanded_SingleRowOpen(t *testing.T) {
	s := NewState()

	s = s.ToggleExpanded("1")
	assert.Equal(t, "1", s.Expanded)

	s = s.ToggleExpanded("2")
	assert.Equal(t, "2", s.Expanded)

	s = s.ToggleExpanded("2")
	assert.Equal(t, "", s.Expanded)

	tbl := New(personColumns())
	view := tbl.View(people(3), NewState().ToggleExpanded("1").ToggleExpanded("3"), 400)
	expanded := 0
	for _, r := range view.Rows {
		if r.Expanded {
			expanded++
			assert.Equal(t, "3", r.ID)
		}
	}
	assert.Equal(t, 1, expanded)
}

func TestLayoutFor(t *testing.T) {
	tbl := New(personColumns())
	assert.Equal(t, LayoutTable, tbl.LayoutFor(0))
	assert.Equal(t, LayoutCards, tbl.LayoutFor(375))
	assert.Equal(t, LayoutTable, tbl.LayoutFor(768))
	assert.Equal(t, LayoutCards, New(personColumns(), WithBreakpoint[person](1024)).LayoutFor(800))
}

func TestParseState(t *testing.T) {
	values := url.Values{}
	values.Set(ParamSearch, "ana")
	values.Set(ParamSort, "age")
	values.Set(ParamDirection, "desc")
	values.Set(ParamPage, "4")
	values.Set(ParamExpanded, "9")

	s := ParseState(values)
	assert.Equal(t, State{Search: "ana", Sort: SortConfig{Key: "age", Direction: Descending}, Page: 4, Expanded: "9"}, s)
	assert.Equal(t, values, s.Values())

	bad := ParseState(url.Values{ParamPage: {"-3"}, ParamSort: {"name"}, ParamDirection: {"sideways"}})
	assert.Equal(t, 1, bad.Page)
	assert.Equal(t, Ascending, bad.Sort.Direction)
	assert.Equal(t, "?", NewState().Link())
}

func TestNew_PanicsWithoutColumns(t *testing.T) {
	assert.Panics(t, func() { New[person](nil) })
}

func TestWriteCSV(t *testing.T) {
	tbl := New([]Column[person]{
		{Header: "Full name", Key: "name"},
		{Header: "City, region", Key: "city"},
		{Header: "Age", Key: "age"},
	})
	rows := []person{
		{ID: 1, Name: `Ana "la grande"`, City: "Sevilla, Andalucía", Age: 30},
		{ID: 2, Name: "Luis", City: "Bilbao", Age: 41},
	}

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf, rows))

	expected := "Full name,\"City, region\",Age\n" +
		"\"Ana \"\"la grande\"\"\",\"Sevilla, Andalucía\",30\n" +
		"Luis,Bilbao,41\n"
	assert.Equal(t, expected, buf.String())
}

func TestExport_UsesSearchAndSort(t *testing.T) {
	tbl := New(personColumns()[:1])
	rows := []person{{ID: 1, Name: "Bea"}, {ID: 2, Name: "Ana"}, {ID: 3, Name: "Tom"}}

	var buf bytes.Buffer
	require.NoError(t, tbl.Export(&buf, rows, NewState().WithSearch("a").ToggleSort("name")))

	assert.Equal(t, "Name\nAna\nBea\n", buf.String())
}

func TestRender(t *testing.T) {
	tbl := New(personColumns())

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, tbl.Render(&buf, tbl.View(nil, NewState(), 0)))
		out := buf.String()
		assert.Contains(t, out, DefaultEmptyMessage)
		assert.Contains(t, out, "Showing 0 to 0 of 0 results")
		assert.Contains(t, out, "<button disabled>Next</button>")
	})

	t.Run("cards show only the expanded row body", func(t *testing.T) {
		var buf bytes.Buffer
		view := tbl.View(people(3), NewState().ToggleExpanded("2"), 320)
		require.NoError(t, tbl.Render(&buf, view))
		out := buf.String()
		assert.Contains(t, out, `data-layout="cards"`)
		assert.Equal(t, 1, strings.Count(out, `class="card-body"`))
		assert.Contains(t, out, "<dd>Person 02</dd>")
	})

	t.Run("escapes cell values", func(t *testing.T) {
		var buf bytes.Buffer
		view := tbl.View([]person{{ID: 1, Name: "<b>x</b>"}}, NewState(), 0)
		require.NoError(t, tbl.Render(&buf, view))
		assert.NotContains(t, buf.String(), "<b>x</b>")
	})
}

func TestView_LinksCarryViewport(t *testing.T) {
	tbl := New(personColumns())
	s := ParseState(url.Values{ParamViewport: {"400"}})
	require.Equal(t, 400, s.Viewport)

	view := tbl.View(people(12), s, s.Viewport)

	assert.Equal(t, LayoutCards, view.Layout)
	links := []string{view.Page.NextLink, view.Headers[0].Link}
	for _, r := range view.Rows {
		links = append(links, r.ToggleLink)
	}
	for _, link := range links {
		values, err := url.ParseQuery(strings.TrimPrefix(link, "?"))
		require.NoError(t, err)
		assert.Equal(t, "400", values.Get(ParamViewport), link)
		assert.Equal(t, LayoutCards, tbl.LayoutFor(ParseState(values).Viewport), link)
	}

	assert.Empty(t, ParseState(url.Values{ParamViewport: {"wide"}}).Viewport)
}

func TestRender_EmptyRowSpansActionsColumn(t *testing.T) {
	tbl := New(personColumns(), WithRowActions(func(p person) []Action {
		return []Action{{Label: "Edit", Href: "/people/" + p.RowID()}}
	}))

	view := tbl.View(nil, NewState(), 0)
	assert.Equal(t, 5, view.ColumnCount)

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf, view))
	assert.Contains(t, buf.String(), `colspan="5"`)

	plain := New(personColumns())
	buf.Reset()
	require.NoError(t, plain.Render(&buf, plain.View(nil, NewState(), 0)))
	assert.Contains(t, buf.String(), `colspan="4"`)
}
