package grid

import (
	"fmt"
	"slices"

	"github.com/mokka-studios/datatable/pkg/types"
)

// Layout holds column order and visibility. The order is always a
// permutation of the declared column ids.
type Layout struct {
	initial  []string
	order    []string
	hidden   map[string]bool
	hideable map[string]bool
	version  uint64
}

// NewLayout returns a layout in declaration order with every column shown.
func NewLayout[T any](m *ColumnModel[T]) *Layout {
	l := &Layout{
		initial:  m.AllIDs(),
		hidden:   make(map[string]bool),
		hideable: make(map[string]bool, m.Len()),
	}
	l.order = slices.Clone(l.initial)
	for _, c := range m.columns {
		l.hideable[c.ID] = c.Hideable()
	}
	return l
}

// Version changes whenever order or visibility changes.
func (l *Layout) Version() uint64 { return l.version }

// Order returns every column id in display order, hidden ones included.
func (l *Layout) Order() []string { return slices.Clone(l.order) }

// Visible returns the shown column ids in display order.
func (l *Layout) Visible() []string {
	out := make([]string, 0, len(l.order))
	for _, id := range l.order {
		if !l.hidden[id] {
			out = append(out, id)
		}
	}
	return out
}

// IsHidden reports whether id is hidden.
func (l *Layout) IsHidden(id string) bool { return l.hidden[id] }

func (l *Layout) known(id string) error {
	if _, ok := l.hideable[id]; !ok {
		return fmt.Errorf("%w: %q", types.ErrUnknownColumn, id)
	}
	return nil
}

// MoveColumn moves id to position to. Positions outside the order are
// clamped to its ends.
func (l *Layout) MoveColumn(id string, to int) error {
	if err := l.known(id); err != nil {
		return err
	}
	from := slices.Index(l.order, id)
	to = max(0, min(to, len(l.order)-1))
	if from == to {
		return nil
	}
	l.order = slices.Delete(l.order, from, from+1)
	l.order = slices.Insert(l.order, to, id)
	l.version++
	return nil
}

// SetOrder replaces the order. ids must be a permutation of the column ids.
func (l *Layout) SetOrder(ids []string) error {
	if len(ids) != len(l.order) {
		return types.ErrInvalidOrder
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := l.hideable[id]; !ok || seen[id] {
			return types.ErrInvalidOrder
		}
		seen[id] = true
	}
	if slices.Equal(ids, l.order) {
		return nil
	}
	l.order = slices.Clone(ids)
	l.version++
	return nil
}

// SetHidden hides or shows id. Columns declared with DisableHiding cannot be
// hidden.
func (l *Layout) SetHidden(id string, hidden bool) error {
	if err := l.known(id); err != nil {
		return err
	}
	if hidden && !l.hideable[id] {
		return fmt.Errorf("%w: %q", types.ErrColumnNotHideable, id)
	}
	if l.hidden[id] == hidden {
		return nil
	}
	if hidden {
		l.hidden[id] = true
	} else {
		delete(l.hidden, id)
	}
	l.version++
	return nil
}

// Toggle flips the visibility of id.
func (l *Layout) Toggle(id string) error {
	return l.SetHidden(id, !l.hidden[id])
}

// Reset restores declaration order and shows every column.
func (l *Layout) Reset() {
	if slices.Equal(l.order, l.initial) && len(l.hidden) == 0 {
		return
	}
	l.order = slices.Clone(l.initial)
	clear(l.hidden)
	l.version++
}
