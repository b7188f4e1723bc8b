package grid

import "github.com/mokka-studios/datatable/pkg/types"

// DefaultPageSize is the page size of a new view.
const DefaultPageSize = 10

// PageSizes lists the page sizes offered by the page size picker.
var PageSizes = []int{10, 20, 30, 40, 50}

// PageState is the requested page. PageIndex is zero based.
type PageState struct {
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
}

// Page is the result of slicing a row list.
type Page[T any] struct {
	Rows      []T
	TotalRows int
	PageCount int
	PageIndex int // after clamping
	PageSize  int
}

// PageCount returns ceil(total/size), never less than 1.
func PageCount(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	n := (total + size - 1) / size
	if n < 1 {
		return 1
	}
	return n
}

// Clamp returns s with PageIndex moved into [0, PageCount-1] and an invalid
// PageSize replaced by DefaultPageSize.
func (s PageState) Clamp(total int) PageState {
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.PageIndex < 0 {
		s.PageIndex = 0
	}
	if last := PageCount(total, s.PageSize) - 1; s.PageIndex > last {
		s.PageIndex = last
	}
	return s
}

// DerivePage clamps state against len(rows) and then slices the window.
// Clamping happens first so a page emptied by filtering is never shown.
func DerivePage[T any](rows []T, state PageState) Page[T] {
	total := len(rows)
	s := state.Clamp(total)
	start := s.PageIndex * s.PageSize
	end := min(start+s.PageSize, total)
	if start > end {
		start = end
	}
	return Page[T]{
		Rows:      rows[start:end:end],
		TotalRows: total,
		PageCount: PageCount(total, s.PageSize),
		PageIndex: s.PageIndex,
		PageSize:  s.PageSize,
	}
}

// Pagination holds the page state of a view. Every change bumps Version.
type Pagination struct {
	state   PageState
	version uint64
}

// NewPagination returns a store on the first page.
func NewPagination(pageSize int) (*Pagination, error) {
	if pageSize <= 0 {
		return nil, types.ErrInvalidPageSize
	}
	return &Pagination{state: PageState{PageSize: pageSize}}, nil
}

// State returns the current page state.
func (p *Pagination) State() PageState { return p.state }

// Version changes whenever the state changes.
func (p *Pagination) Version() uint64 { return p.version }

func (p *Pagination) set(s PageState) bool {
	if s == p.state {
		return false
	}
	p.state = s
	p.version++
	return true
}

// SetPageIndex moves to page i. Negative values select the first page; the
// upper bound is enforced by Clamp when the page is derived.
func (p *Pagination) SetPageIndex(i int) bool {
	return p.set(PageState{PageIndex: max(i, 0), PageSize: p.state.PageSize})
}

// SetPageSize changes the page size and returns to the first page.
func (p *Pagination) SetPageSize(n int) (bool, error) {
	if n <= 0 {
		return false, types.ErrInvalidPageSize
	}
	return p.set(PageState{PageIndex: 0, PageSize: n}), nil
}

// Clamp applies PageState.Clamp to the stored state.
func (p *Pagination) Clamp(total int) bool {
	return p.set(p.state.Clamp(total))
}

// Next moves forward one page when one exists.
func (p *Pagination) Next(total int) bool {
	if !p.CanNext(total) {
		return false
	}
	return p.SetPageIndex(p.state.Clamp(total).PageIndex + 1)
}

// Prev moves back one page when one exists.
func (p *Pagination) Prev(total int) bool {
	s := p.state.Clamp(total)
	if s.PageIndex == 0 {
		return p.set(s)
	}
	return p.SetPageIndex(s.PageIndex - 1)
}

// First moves to the first page.
func (p *Pagination) First() bool { return p.SetPageIndex(0) }

// Last moves to the last page.
func (p *Pagination) Last(total int) bool {
	return p.SetPageIndex(PageCount(total, p.state.PageSize) - 1)
}

// CanNext reports whether a page follows the current one.
func (p *Pagination) CanNext(total int) bool {
	s := p.state.Clamp(total)
	return s.PageIndex < PageCount(total, s.PageSize)-1
}

// CanPrev reports whether a page precedes the current one.
func (p *Pagination) CanPrev(total int) bool {
	return p.state.Clamp(total).PageIndex > 0
}
