package grid

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the sort direction of a column.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec selects the single sorted column.
type SortSpec struct {
	ColumnID  string    `json:"column_id"`
	Direction Direction `json:"direction"`
}

// Comparator orders rows by a column. Text and enum columns use a collator
// for the configured locale. A Comparator is not safe for concurrent use.
type Comparator[T any] struct {
	model    *ColumnModel[T]
	collator *collate.Collator
}

// NewComparator returns a comparator using locale for text ordering.
func NewComparator[T any](m *ColumnModel[T], locale language.Tag) *Comparator[T] {
	return &Comparator[T]{model: m, collator: collate.New(locale)}
}

// Compare returns -1, 0 or 1. Missing values sort last regardless of
// direction. Unknown or unsortable columns compare equal.
func (c *Comparator[T]) Compare(a, b T, spec SortSpec) int {
	col, ok := c.model.Resolve(spec.ColumnID)
	if !ok || !col.Sortable() {
		return 0
	}
	va, vb := col.Value(a), col.Value(b)

	var (
		result     int
		hasA, hasB bool
	)
	if col.Type == TypeNumber {
		var na, nb float64
		na, hasA = numberOf(va)
		nb, hasB = numberOf(vb)
		result = cmp.Compare(na, nb)
	} else {
		var sa, sb string
		sa, hasA = textOf(va)
		sb, hasB = textOf(vb)
		result = c.collator.CompareString(sa, sb)
	}

	switch {
	case !hasA && !hasB:
		return 0
	case !hasA:
		return 1
	case !hasB:
		return -1
	}
	if spec.Direction == Desc {
		result = -result
	}
	return sign(result)
}

// Sort returns a stably sorted copy of rows. A nil spec keeps source order.
func (c *Comparator[T]) Sort(rows []T, spec *SortSpec) []T {
	out := slices.Clone(rows)
	if spec == nil {
		return out
	}
	s := *spec
	slices.SortStableFunc(out, func(a, b T) int { return c.Compare(a, b, s) })
	return out
}

// Compare orders two rows with an English collator. Callers that sort many
// rows should reuse a Comparator.
func Compare[T any](a, b T, spec SortSpec, m *ColumnModel[T]) int {
	return NewComparator(m, language.English).Compare(a, b, spec)
}

// SortRows returns a stably sorted copy of rows using an English collator.
func SortRows[T any](rows []T, spec *SortSpec, m *ColumnModel[T]) []T {
	return NewComparator(m, language.English).Sort(rows, spec)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
