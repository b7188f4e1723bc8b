package grid

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/mokka-studios/datatable/pkg/types"
)

// ChangeKind identifies which input of a view changed.
type ChangeKind int

// Change kinds delivered to OnChange listeners.
const (
	RowsChanged ChangeKind = iota
	FiltersChanged
	SortChanged
	PageChanged
	SelectionChanged
	LayoutChanged
)

func (k ChangeKind) String() string {
	switch k {
	case RowsChanged:
		return "rows"
	case FiltersChanged:
		return "filters"
	case SortChanged:
		return "sort"
	case PageChanged:
		return "page"
	case SelectionChanged:
		return "selection"
	case LayoutChanged:
		return "layout"
	}
	return fmt.Sprintf("change(%d)", int(k))
}

// Option configures a View.
type Option func(*options)

type options struct {
	pageSize int
	locale   language.Tag
	logger   logrus.FieldLogger
}

// WithPageSize sets the initial page size.
func WithPageSize(n int) Option {
	return func(o *options) { o.pageSize = n }
}

// WithLocale sets the locale used to order text columns.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// WithLogger sets the logger. Views log nothing by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// versions is the memoization key of a derived snapshot.
type versions struct {
	rows, filters, sort, page, selection, layout uint64
}

// View is the table view controller. It owns the source rows and every
// piece of table state, and derives the visible page on demand. Derivation
// is memoized on the version counters of its inputs.
//
// A View is safe for concurrent use. Listeners run after the internal lock
// is released and may call back into the view.
type View[T any, K comparable] struct {
	mu sync.Mutex

	model      *ColumnModel[T]
	identity   func(T) K
	comparator *Comparator[T]
	log        logrus.FieldLogger

	rows        []T
	rowsVersion uint64

	filters       []Filter
	search        string
	filterVersion uint64

	sort        *SortSpec
	sortVersion uint64

	pages     *Pagination
	selection *Selection[K]
	layout    *Layout

	filteredKey [2]uint64
	filtered    []T
	sortedKey   [3]uint64
	sorted      []T
	cachedKey   versions
	cached      *ViewState[T, K]
	derivations int

	listeners []func(ChangeKind)
}

// NewView builds a view over rows. identity must return a stable key for
// each row.
func NewView[T any, K comparable](m *ColumnModel[T], identity func(T) K, rows []T, opts ...Option) (*View[T, K], error) {
	if m == nil {
		return nil, &types.ConfigurationError{Component: "view", Reason: "nil column model", Err: types.ErrInvalidColumn}
	}
	if identity == nil {
		return nil, &types.ConfigurationError{Component: "view", Reason: "nil row identity", Err: types.ErrInvalidColumn}
	}
	o := options{pageSize: DefaultPageSize, locale: language.English}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = discardLogger()
	}
	pages, err := NewPagination(o.pageSize)
	if err != nil {
		return nil, err
	}
	v := &View[T, K]{
		model:      m,
		identity:   identity,
		comparator: NewComparator(m, o.locale),
		log:        o.logger,
		rows:       slices.Clone(rows),
		pages:      pages,
		selection:  NewSelection[K](),
		layout:     NewLayout(m),
	}
	return v, nil
}

// Model returns the column model.
func (v *View[T, K]) Model() *ColumnModel[T] { return v.model }

// Identity returns the row identity of row.
func (v *View[T, K]) Identity(row T) K { return v.identity(row) }

// OnChange registers fn to be called after every state change.
func (v *View[T, K]) OnChange(fn func(ChangeKind)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

// update runs fn under the lock and then notifies listeners of the changes
// fn reported.
func (v *View[T, K]) update(fn func() ([]ChangeKind, error)) error {
	v.mu.Lock()
	kinds, err := fn()
	listeners := slices.Clone(v.listeners)
	v.mu.Unlock()

	for _, k := range kinds {
		for _, l := range listeners {
			l(k)
		}
	}
	return err
}

// Source rows

// SetRows replaces the source rows. Selection entries for rows that are no
// longer present are pruned; pagination is clamped on the next derivation.
func (v *View[T, K]) SetRows(rows []T) {
	_ = v.update(func() ([]ChangeKind, error) {
		v.rows = slices.Clone(rows)
		v.rowsVersion++
		return v.pruneLocked(RowsChanged), nil
	})
}

// ReplaceRow swaps the source row that has the same identity as row. It
// reports false when no such row exists.
func (v *View[T, K]) ReplaceRow(row T) bool {
	replaced := false
	_ = v.update(func() ([]ChangeKind, error) {
		i := v.indexLocked(v.identity(row))
		if i < 0 {
			return nil, nil
		}
		v.rows[i] = row
		v.rowsVersion++
		replaced = true
		return []ChangeKind{RowsChanged}, nil
	})
	return replaced
}

// AppendRow adds row to the end of the source rows.
func (v *View[T, K]) AppendRow(row T) {
	_ = v.update(func() ([]ChangeKind, error) {
		v.rows = append(v.rows, row)
		v.rowsVersion++
		return []ChangeKind{RowsChanged}, nil
	})
}

// RemoveRow deletes the source row with identity id and drops it from the
// selection. It reports false when no such row exists.
func (v *View[T, K]) RemoveRow(id K) bool {
	removed := false
	_ = v.update(func() ([]ChangeKind, error) {
		i := v.indexLocked(id)
		if i < 0 {
			return nil, nil
		}
		v.rows = slices.Delete(v.rows, i, i+1)
		v.rowsVersion++
		removed = true
		return v.pruneLocked(RowsChanged), nil
	})
	return removed
}

// Rows returns a copy of the source rows.
func (v *View[T, K]) Rows() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.rows)
}

// Row returns the source row with identity id.
func (v *View[T, K]) Row(id K) (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if i := v.indexLocked(id); i >= 0 {
		return v.rows[i], true
	}
	var zero T
	return zero, false
}

func (v *View[T, K]) indexLocked(id K) int {
	return slices.IndexFunc(v.rows, func(r T) bool { return v.identity(r) == id })
}

// pruneLocked drops selected ids missing from the source rows.
func (v *View[T, K]) pruneLocked(kinds ...ChangeKind) []ChangeKind {
	present := make(map[K]struct{}, len(v.rows))
	for _, r := range v.rows {
		present[v.identity(r)] = struct{}{}
	}
	n := v.selection.Prune(func(id K) bool {
		_, ok := present[id]
		return ok
	})
	if n > 0 {
		v.log.WithField("pruned", n).Debug("selection pruned after source change")
		kinds = append(kinds, SelectionChanged)
	}
	return kinds
}

// Filters

// checkFilter rejects filters on unknown columns or with operators outside
// the column's set. Incomplete operands are accepted; such filters stay
// inactive until completed.
func (v *View[T, K]) checkFilter(f Filter) error {
	err := ValidateFilter(f, v.model)
	if err == nil {
		return nil
	}
	if errors.Is(err, types.ErrInvalidOperand) {
		v.log.WithField("filter", f.String()).WithError(err).Debug("filter stored as inactive")
		return nil
	}
	return err
}

// SetColumnFilter replaces every filter on f.ColumnID with f.
func (v *View[T, K]) SetColumnFilter(f Filter) error {
	return v.update(func() ([]ChangeKind, error) {
		if err := v.checkFilter(f); err != nil {
			return nil, err
		}
		v.filters = ReplaceColumnFilter(v.filters, f)
		v.filterVersion++
		return []ChangeKind{FiltersChanged}, nil
	})
}

// AddFilter appends f. Filters in the list are combined with AND.
func (v *View[T, K]) AddFilter(f Filter) error {
	return v.update(func() ([]ChangeKind, error) {
		if err := v.checkFilter(f); err != nil {
			return nil, err
		}
		v.filters = append(v.filters, f)
		v.filterVersion++
		return []ChangeKind{FiltersChanged}, nil
	})
}

// SetFilters replaces the whole filter list.
func (v *View[T, K]) SetFilters(filters []Filter) error {
	return v.update(func() ([]ChangeKind, error) {
		for _, f := range filters {
			if err := v.checkFilter(f); err != nil {
				return nil, err
			}
		}
		v.filters = slices.Clone(filters)
		v.filterVersion++
		return []ChangeKind{FiltersChanged}, nil
	})
}

// RemoveColumnFilter drops every filter on columnID.
func (v *View[T, K]) RemoveColumnFilter(columnID string) {
	_ = v.update(func() ([]ChangeKind, error) {
		next := RemoveColumnFilters(v.filters, columnID)
		if len(next) == len(v.filters) {
			return nil, nil
		}
		v.filters = next
		v.filterVersion++
		return []ChangeKind{FiltersChanged}, nil
	})
}

// ClearFilters drops every filter and the search text.
func (v *View[T, K]) ClearFilters() {
	_ = v.update(func() ([]ChangeKind, error) {
		if len(v.filters) == 0 && v.search == "" {
			return nil, nil
		}
		v.filters = nil
		v.search = ""
		v.filterVersion++
		return []ChangeKind{FiltersChanged}, nil
	})
}

// SetSearch sets the toolbar search text, matched case-insensitively against
// every text and enum column. An empty string disables it.
func (v *View[T, K]) SetSearch(text string) {
	_ = v.update(func() ([]ChangeKind, error) {
		if text == v.search {
			return nil, nil
		}
		v.search = text
		v.filterVersion++
		return []ChangeKind{FiltersChanged}, nil
	})
}

// Filters returns a copy of the filter list, inactive filters included.
func (v *View[T, K]) Filters() []Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.filters)
}

// ActiveFilters returns the filters that take part in evaluation.
func (v *View[T, K]) ActiveFilters() []Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Filter, 0, len(v.filters))
	for _, f := range v.filters {
		if IsActive(f, v.model) {
			out = append(out, f)
		}
	}
	return out
}

// Sort

// SetSort sets the sorted column. A nil spec restores source order.
func (v *View[T, K]) SetSort(spec *SortSpec) error {
	return v.update(func() ([]ChangeKind, error) {
		if spec == nil {
			return v.setSortLocked(nil), nil
		}
		s := *spec
		if s.Direction == "" {
			s.Direction = Asc
		}
		if s.Direction != Asc && s.Direction != Desc {
			return nil, fmt.Errorf("sort direction %q: %w", s.Direction, types.ErrInvalidData)
		}
		if err := v.sortableLocked(s.ColumnID); err != nil {
			return nil, err
		}
		return v.setSortLocked(&s), nil
	})
}

// ToggleSort applies a click on a column header: unsorted, ascending,
// descending, unsorted. Clicking another column starts it ascending.
func (v *View[T, K]) ToggleSort(columnID string) error {
	return v.update(func() ([]ChangeKind, error) {
		if err := v.sortableLocked(columnID); err != nil {
			return nil, err
		}
		switch {
		case v.sort == nil || v.sort.ColumnID != columnID:
			return v.setSortLocked(&SortSpec{ColumnID: columnID, Direction: Asc}), nil
		case v.sort.Direction == Asc:
			return v.setSortLocked(&SortSpec{ColumnID: columnID, Direction: Desc}), nil
		default:
			return v.setSortLocked(nil), nil
		}
	})
}

// Sort returns the active sort, or nil.
func (v *View[T, K]) Sort() *SortSpec {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sort == nil {
		return nil
	}
	s := *v.sort
	return &s
}

func (v *View[T, K]) sortableLocked(columnID string) error {
	col, ok := v.model.Resolve(columnID)
	if !ok {
		return fmt.Errorf("%w: %q", types.ErrUnknownColumn, columnID)
	}
	if !col.Sortable() {
		return fmt.Errorf("%w: %q", types.ErrColumnNotSortable, columnID)
	}
	return nil
}

func (v *View[T, K]) setSortLocked(s *SortSpec) []ChangeKind {
	if (s == nil && v.sort == nil) || (s != nil && v.sort != nil && *s == *v.sort) {
		return nil
	}
	v.sort = s
	v.sortVersion++
	return []ChangeKind{SortChanged}
}

// Pagination

func (v *View[T, K]) pageUpdate(fn func(total int) bool) {
	_ = v.update(func() ([]ChangeKind, error) {
		if fn(len(v.filteredLocked())) {
			return []ChangeKind{PageChanged}, nil
		}
		return nil, nil
	})
}

// SetPageIndex moves to page i, clamped to the pages that exist.
func (v *View[T, K]) SetPageIndex(i int) {
	v.pageUpdate(func(total int) bool {
		changed := v.pages.SetPageIndex(i)
		return v.pages.Clamp(total) || changed
	})
}

// SetPageSize changes the page size and returns to the first page.
func (v *View[T, K]) SetPageSize(n int) error {
	return v.update(func() ([]ChangeKind, error) {
		changed, err := v.pages.SetPageSize(n)
		if err != nil || !changed {
			return nil, err
		}
		return []ChangeKind{PageChanged}, nil
	})
}

// NextPage moves forward one page when one exists.
func (v *View[T, K]) NextPage() { v.pageUpdate(v.pages.Next) }

// PrevPage moves back one page when one exists.
func (v *View[T, K]) PrevPage() { v.pageUpdate(v.pages.Prev) }

// FirstPage moves to the first page.
func (v *View[T, K]) FirstPage() {
	v.pageUpdate(func(int) bool { return v.pages.First() })
}

// LastPage moves to the last page.
func (v *View[T, K]) LastPage() { v.pageUpdate(v.pages.Last) }

// Selection

// ToggleRow flips the selection of the source row with identity id and
// returns its new state. Unknown ids are ignored.
func (v *View[T, K]) ToggleRow(id K) bool {
	selected := false
	_ = v.update(func() ([]ChangeKind, error) {
		if v.indexLocked(id) < 0 {
			return nil, nil
		}
		selected = v.selection.Toggle(id)
		return []ChangeKind{SelectionChanged}, nil
	})
	return selected
}

// SetSelected selects or deselects the source row with identity id.
func (v *View[T, K]) SetSelected(id K, selected bool) {
	_ = v.update(func() ([]ChangeKind, error) {
		if v.indexLocked(id) < 0 {
			return nil, nil
		}
		before := v.selection.Version()
		v.selection.Set(id, selected)
		if v.selection.Version() == before {
			return nil, nil
		}
		return []ChangeKind{SelectionChanged}, nil
	})
}

// ToggleAllVisible selects or deselects every row on the visible page.
func (v *View[T, K]) ToggleAllVisible(selected bool) {
	v.selectVisible(func(ids []K) { v.selection.ToggleAll(ids, selected) })
}

// ToggleHeader applies a click on the "select all" checkbox.
func (v *View[T, K]) ToggleHeader() {
	v.selectVisible(v.selection.ToggleHeader)
}

func (v *View[T, K]) selectVisible(fn func(ids []K)) {
	_ = v.update(func() ([]ChangeKind, error) {
		state, kinds := v.deriveLocked()
		before := v.selection.Version()
		fn(state.IDs)
		if v.selection.Version() != before {
			kinds = append(kinds, SelectionChanged)
		}
		return kinds, nil
	})
}

// ClearSelection deselects every row.
func (v *View[T, K]) ClearSelection() {
	_ = v.update(func() ([]ChangeKind, error) {
		if v.selection.SelectedCount() == 0 {
			return nil, nil
		}
		v.selection.Clear()
		return []ChangeKind{SelectionChanged}, nil
	})
}

// IsSelected reports whether the row with identity id is selected.
func (v *View[T, K]) IsSelected(id K) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.IsSelected(id)
}

// SelectedCount returns the number of selected rows.
func (v *View[T, K]) SelectedCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.SelectedCount()
}

// SelectedRows returns the selected source rows in source order.
func (v *View[T, K]) SelectedRows() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []T
	for _, r := range v.rows {
		if v.selection.IsSelected(v.identity(r)) {
			out = append(out, r)
		}
	}
	return out
}

// Column layout

func (v *View[T, K]) layoutUpdate(fn func() error) error {
	return v.update(func() ([]ChangeKind, error) {
		before := v.layout.Version()
		if err := fn(); err != nil {
			return nil, err
		}
		if v.layout.Version() == before {
			return nil, nil
		}
		return []ChangeKind{LayoutChanged}, nil
	})
}

// MoveColumn moves columnID to display position to.
func (v *View[T, K]) MoveColumn(columnID string, to int) error {
	return v.layoutUpdate(func() error { return v.layout.MoveColumn(columnID, to) })
}

// SetColumnOrder replaces the display order; ids must be a permutation of
// the column ids.
func (v *View[T, K]) SetColumnOrder(ids []string) error {
	return v.layoutUpdate(func() error { return v.layout.SetOrder(ids) })
}

// HideColumn hides columnID.
func (v *View[T, K]) HideColumn(columnID string) error {
	return v.layoutUpdate(func() error { return v.layout.SetHidden(columnID, true) })
}

// ShowColumn shows columnID.
func (v *View[T, K]) ShowColumn(columnID string) error {
	return v.layoutUpdate(func() error { return v.layout.SetHidden(columnID, false) })
}

// ToggleColumn flips the visibility of columnID.
func (v *View[T, K]) ToggleColumn(columnID string) error {
	return v.layoutUpdate(func() error { return v.layout.Toggle(columnID) })
}

// ResetLayout restores declaration order and shows every column.
func (v *View[T, K]) ResetLayout() {
	_ = v.layoutUpdate(func() error {
		v.layout.Reset()
		return nil
	})
}

// ColumnOrder returns every column id in display order.
func (v *View[T, K]) ColumnOrder() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.layout.Order()
}

// IsColumnHidden reports whether columnID is hidden.
func (v *View[T, K]) IsColumnHidden(columnID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.layout.IsHidden(columnID)
}

// Derivation

// ViewState is a derived snapshot of a view.
type ViewState[T any, K comparable] struct {
	Rows     []T    // visible page
	IDs      []K    // identities of Rows
	Selected []bool // selection of Rows

	// Columns are the shown columns in display order.
	Columns []Column[T]

	SourceRows int // rows before filtering
	TotalRows  int // rows after filtering
	PageIndex  int
	PageSize   int
	PageCount  int

	Sort          *SortSpec
	Filters       []Filter
	Search        string
	Header        HeaderState
	SelectedCount int
}

// Headers returns the header labels of the shown columns.
func (s ViewState[T, K]) Headers() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Header
	}
	return out
}

// Cells renders row through the shown columns.
func (s ViewState[T, K]) Cells(row T) []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Cell(row)
	}
	return out
}

// CanNext reports whether a page follows the visible one.
func (s ViewState[T, K]) CanNext() bool { return s.PageIndex < s.PageCount-1 }

// CanPrev reports whether a page precedes the visible one.
func (s ViewState[T, K]) CanPrev() bool { return s.PageIndex > 0 }

// Snapshot derives the current view: filter, stable sort, clamp and slice.
// Repeated calls without intervening changes return the memoized result, so
// the returned slices must be treated as read-only.
func (v *View[T, K]) Snapshot() ViewState[T, K] {
	var state ViewState[T, K]
	_ = v.update(func() ([]ChangeKind, error) {
		var kinds []ChangeKind
		state, kinds = v.deriveLocked()
		return kinds, nil
	})
	return state
}

// Derivations returns how many times the visible page has been recomputed.
func (v *View[T, K]) Derivations() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.derivations
}

func (v *View[T, K]) versionsLocked() versions {
	return versions{
		rows:      v.rowsVersion,
		filters:   v.filterVersion,
		sort:      v.sortVersion,
		page:      v.pages.Version(),
		selection: v.selection.Version(),
		layout:    v.layout.Version(),
	}
}

// filteredLocked returns the rows matching every active filter and the
// search text, memoized on the rows and filter versions.
func (v *View[T, K]) filteredLocked() []T {
	key := [2]uint64{v.rowsVersion, v.filterVersion}
	if v.filtered != nil && key == v.filteredKey {
		return v.filtered
	}
	active := compileAll(v.filters, v.model)
	needle := strings.ToLower(strings.TrimSpace(v.search))
	out := make([]T, 0, len(v.rows))
rows:
	for _, r := range v.rows {
		for _, c := range active {
			if !c.test(r) {
				continue rows
			}
		}
		if needle != "" && !matchSearch(r, needle, v.model) {
			continue
		}
		out = append(out, r)
	}
	v.filtered, v.filteredKey = out, key
	return out
}

// sortedLocked returns the filtered rows in sort order.
func (v *View[T, K]) sortedLocked() []T {
	key := [3]uint64{v.rowsVersion, v.filterVersion, v.sortVersion}
	if v.sorted != nil && key == v.sortedKey {
		return v.sorted
	}
	v.sorted, v.sortedKey = v.comparator.Sort(v.filteredLocked(), v.sort), key
	return v.sorted
}

func (v *View[T, K]) deriveLocked() (ViewState[T, K], []ChangeKind) {
	if v.cached != nil && v.cachedKey == v.versionsLocked() {
		return *v.cached, nil
	}

	var kinds []ChangeKind
	sorted := v.sortedLocked()
	if v.pages.Clamp(len(sorted)) {
		kinds = append(kinds, PageChanged)
	}
	page := DerivePage(sorted, v.pages.State())

	state := ViewState[T, K]{
		Rows:          page.Rows,
		IDs:           make([]K, len(page.Rows)),
		Selected:      make([]bool, len(page.Rows)),
		SourceRows:    len(v.rows),
		TotalRows:     page.TotalRows,
		PageIndex:     page.PageIndex,
		PageSize:      page.PageSize,
		PageCount:     page.PageCount,
		Filters:       slices.Clone(v.filters),
		Search:        v.search,
		SelectedCount: v.selection.SelectedCount(),
	}
	for i, r := range page.Rows {
		id := v.identity(r)
		state.IDs[i] = id
		state.Selected[i] = v.selection.IsSelected(id)
	}
	state.Header = v.selection.HeaderState(state.IDs)
	if v.sort != nil {
		s := *v.sort
		state.Sort = &s
	}
	for _, id := range v.layout.Visible() {
		col, _ := v.model.Resolve(id)
		state.Columns = append(state.Columns, col)
	}

	v.derivations++
	v.cached, v.cachedKey = &state, v.versionsLocked()
	v.log.WithFields(logrus.Fields{
		"source":  state.SourceRows,
		"matched": state.TotalRows,
		"page":    state.PageIndex,
		"visible": len(state.Rows),
	}).Debug("view derived")
	return state, kinds
}
