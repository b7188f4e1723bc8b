package grid

import (
	"fmt"

	"github.com/mokka-studios/datatable/pkg/types"
)

// ValueType selects the filter operators and the ordering used for a column.
type ValueType string

// Supported value types.
const (
	TypeText   ValueType = "text"
	TypeNumber ValueType = "number"
	TypeEnum   ValueType = "enum"
)

// Column describes how to project one field of T into a named column.
// Accessors must be pure.
type Column[T any] struct {
	ID       string
	Header   string
	Accessor func(row T) any
	Render   func(value any, row T) string
	Type     ValueType

	// Options lists the enum values offered by a faceted filter.
	Options []string

	DisableSorting   bool
	DisableFiltering bool
	DisableHiding    bool
}

// Value returns the raw column value for row.
func (c Column[T]) Value(row T) any {
	return c.Accessor(row)
}

// Cell returns the rendered cell for row. Columns without a renderer use
// FormatValue.
func (c Column[T]) Cell(row T) string {
	v := c.Accessor(row)
	if c.Render != nil {
		return c.Render(v, row)
	}
	return FormatValue(v)
}

// Sortable reports whether the column takes part in sorting.
func (c Column[T]) Sortable() bool { return !c.DisableSorting }

// Filterable is derived from the value type.
func (c Column[T]) Filterable() bool { return c.Type != "" && !c.DisableFiltering }

// Hideable reports whether the column can be hidden by the user.
func (c Column[T]) Hideable() bool { return !c.DisableHiding }

// ColumnModel is an immutable, validated set of columns with a stable order.
type ColumnModel[T any] struct {
	columns []Column[T]
	index   map[string]int
}

// NewColumnModel validates cols and builds a model. It returns a
// *types.ConfigurationError for duplicate or empty ids, nil accessors and
// unknown value types.
func NewColumnModel[T any](cols ...Column[T]) (*ColumnModel[T], error) {
	m := &ColumnModel[T]{
		columns: make([]Column[T], 0, len(cols)),
		index:   make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if c.ID == "" {
			return nil, columnError(types.ErrInvalidColumn, fmt.Sprintf("column %d has an empty id", i))
		}
		if _, dup := m.index[c.ID]; dup {
			return nil, columnError(types.ErrDuplicateColumn, fmt.Sprintf("id %q", c.ID))
		}
		if c.Accessor == nil {
			return nil, columnError(types.ErrInvalidColumn, fmt.Sprintf("column %q has no accessor", c.ID))
		}
		switch c.Type {
		case "", TypeText, TypeNumber, TypeEnum:
		default:
			return nil, columnError(types.ErrInvalidColumn, fmt.Sprintf("column %q has unknown type %q", c.ID, c.Type))
		}
		if c.Header == "" {
			c.Header = c.ID
		}
		m.index[c.ID] = len(m.columns)
		m.columns = append(m.columns, c)
	}
	return m, nil
}

// MustColumnModel is like NewColumnModel but panics on error. It is meant for
// package-level column declarations.
func MustColumnModel[T any](cols ...Column[T]) *ColumnModel[T] {
	m, err := NewColumnModel(cols...)
	if err != nil {
		panic(err)
	}
	return m
}

func columnError(err error, reason string) error {
	return &types.ConfigurationError{Component: "columns", Reason: reason, Err: err}
}

// Resolve returns the column with the given id.
func (m *ColumnModel[T]) Resolve(id string) (Column[T], bool) {
	i, ok := m.index[id]
	if !ok {
		return Column[T]{}, false
	}
	return m.columns[i], true
}

// AllIDs returns every column id in declaration order.
func (m *ColumnModel[T]) AllIDs() []string {
	ids := make([]string, len(m.columns))
	for i, c := range m.columns {
		ids[i] = c.ID
	}
	return ids
}

// Columns returns a copy of the columns in declaration order.
func (m *ColumnModel[T]) Columns() []Column[T] {
	out := make([]Column[T], len(m.columns))
	copy(out, m.columns)
	return out
}

// Len returns the number of columns.
func (m *ColumnModel[T]) Len() int { return len(m.columns) }
