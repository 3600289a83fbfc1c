// Package table projects the product collection into filtered, sorted rows.
package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/fekuna/omnipos-catalog-admin/internal/catalog"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrUnknownColumn       = errors.New("unknown column")
	ErrNotSortable         = errors.New("column is not sortable")
	ErrNotFilterable       = errors.New("column is not filterable")
	ErrNoFilterableColumns = errors.New("at least one filter option is required")
)

type Direction int

const (
	None Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

type SortKey struct {
	Column    string
	Direction Direction
}

// State tells the renderer which of the distinct views to show.
type State int

const (
	// Loading means no snapshot has been loaded yet.
	Loading State = iota
	// Empty means the collection has no products at all.
	Empty
	// NoMatches means products exist but the filter excluded all of them.
	NoMatches
	Ready
)

func (s State) String() string {
	return [...]string{"loading", "empty", "no-matches", "ready"}[s]
}

type Row struct {
	ID      string
	Product model.Product
	Cells   []string
}

type Result struct {
	State   State
	Columns []Column
	Rows    []Row
	// Total is the collection size before filtering.
	Total int
}

type View struct {
	mu sync.RWMutex

	columns []Column
	byKey   map[string]int
	options []FilterOption
	lang    language.Tag

	active  string
	filters map[string]string
	sort    []SortKey
	snap    catalog.Snapshot
}

func NewView(columns []Column, options []FilterOption) (*View, error) {
	if len(options) == 0 {
		return nil, ErrNoFilterableColumns
	}
	byKey := make(map[string]int, len(columns))
	for i, c := range columns {
		byKey[c.Key] = i
	}
	for _, o := range options {
		if _, ok := byKey[o.Column]; !ok {
			return nil, fmt.Errorf("filter option %q: %w", o.Column, ErrUnknownColumn)
		}
	}
	return &View{
		columns: columns,
		byKey:   byKey,
		options: options,
		lang:    language.BrazilianPortuguese,
		active:  options[0].Column,
		filters: map[string]string{},
	}, nil
}

// NewProductView builds the view over the standard product columns.
func NewProductView() *View {
	v, err := NewView(ProductColumns(), ProductFilters())
	if err != nil {
		panic(err)
	}
	return v
}

// Subscribe keeps the view in step with collection mutations.
func (v *View) Subscribe(bus EventBus.Bus) error {
	return bus.Subscribe(catalog.TopicChanged, v.Update)
}

// Update installs a newer snapshot; stale ones are ignored.
func (v *View) Update(s catalog.Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s.Version < v.snap.Version {
		return
	}
	v.snap = s
}

func (v *View) FilterOptions() []FilterOption {
	return slices.Clone(v.options)
}

func (v *View) ActiveFilter() FilterOption {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, o := range v.options {
		if o.Column == v.active {
			return o
		}
	}
	return v.options[0]
}

// SelectFilterColumn makes column the target of the filter box. The box then
// shows whatever was last typed for that column.
func (v *View) SelectFilterColumn(column string) error {
	for _, o := range v.options {
		if o.Column == column {
			v.mu.Lock()
			v.active = column
			v.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("%q: %w", column, ErrNotFilterable)
}

func (v *View) SetFilterText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if text == "" {
		delete(v.filters, v.active)
		return
	}
	v.filters[v.active] = text
}

func (v *View) FilterText() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filters[v.active]
}

// ToggleSort cycles column through asc, desc and none. Sorting is single
// column: every other column's sort is cleared.
func (v *View) ToggleSort(column string) error {
	i, ok := v.byKey[column]
	if !ok {
		return fmt.Errorf("%q: %w", column, ErrUnknownColumn)
	}
	if !v.columns[i].Sortable {
		return fmt.Errorf("%q: %w", column, ErrNotSortable)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	current := None
	if len(v.sort) == 1 && v.sort[0].Column == column {
		current = v.sort[0].Direction
	}
	switch current {
	case None:
		v.sort = []SortKey{{Column: column, Direction: Ascending}}
	case Ascending:
		v.sort = []SortKey{{Column: column, Direction: Descending}}
	default:
		v.sort = nil
	}
	return nil
}

func (v *View) SortState() []SortKey {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.sort)
}

// Rows computes the visible rows from the latest snapshot.
func (v *View) Rows() Result {
	v.mu.RLock()
	snap := v.snap
	active := v.active
	needle := v.filters[active]
	sortState := slices.Clone(v.sort)
	v.mu.RUnlock()

	res := Result{Columns: v.visibleColumns(), Total: len(snap.Products)}
	switch {
	case !snap.Loaded:
		res.State = Loading
		return res
	case len(snap.Products) == 0:
		res.State = Empty
		return res
	}

	products := snap.Products
	if needle != "" {
		col := v.columns[v.byKey[active]]
		products = filter(products, col, needle)
	}
	if len(sortState) == 1 && sortState[0].Direction != None {
		products = v.sorted(products, sortState[0])
	}

	if len(products) == 0 {
		res.State = NoMatches
		return res
	}
	res.State = Ready
	res.Rows = make([]Row, len(products))
	for i, p := range products {
		cells := make([]string, len(res.Columns))
		for j, c := range res.Columns {
			cells[j] = c.cell(p)
		}
		res.Rows[i] = Row{ID: p.ID, Product: p, Cells: cells}
	}
	return res
}

func (v *View) visibleColumns() []Column {
	out := make([]Column, 0, len(v.columns))
	for _, c := range v.columns {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}

// filter keeps products whose cell contains needle, ignoring case.
func filter(products []model.Product, col Column, needle string) []model.Product {
	needle = strings.ToLower(needle)
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(col.Value(p)), needle) {
			out = append(out, p)
		}
	}
	return out
}

func (v *View) sorted(products []model.Product, key SortKey) []model.Product {
	col := v.columns[v.byKey[key.Column]]
	cmp := col.Compare
	if cmp == nil {
		coll := collate.New(v.lang, collate.IgnoreCase)
		cmp = func(a, b model.Product) int {
			return coll.CompareString(col.Value(a), col.Value(b))
		}
	}

	out := slices.Clone(products)
	slices.SortStableFunc(out, func(a, b model.Product) int {
		if key.Direction == Descending {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}
