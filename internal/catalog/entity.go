package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/mokka-studios/datatable/pkg/grid"
)

// Assignment errors.
var (
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidAssignment = errors.New("assignment must be key=value")
)

// Setter parses value and stores it in one field of row.
type Setter[T any] func(row *T, value string) error

// Entity describes one entity type for the grid.
type Entity[T any] struct {
	Name    string
	Columns *grid.ColumnModel[T]
	ID      func(T) string
	Setters map[string]Setter[T]
}

// FieldNames returns the assignable fields in sorted order.
func (e Entity[T]) FieldNames() []string {
	names := make([]string, 0, len(e.Setters))
	for n := range e.Setters {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Set assigns one field of row.
func (e Entity[T]) Set(row *T, field, value string) error {
	set, ok := e.Setters[field]
	if !ok {
		return fmt.Errorf("%w %q for %s (fields: %s)", ErrUnknownField, field, e.Name, strings.Join(e.FieldNames(), ", "))
	}
	if err := set(row, value); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

// Assign applies key=value assignments to row in order.
func (e Entity[T]) Assign(row *T, assignments []string) error {
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("%w: %q", ErrInvalidAssignment, a)
		}
		if err := e.Set(row, key, value); err != nil {
			return err
		}
	}
	return nil
}

func setString[T any](field func(*T) *string) Setter[T] {
	return func(row *T, value string) error {
		*field(row) = strings.TrimSpace(value)
		return nil
	}
}

func setInt[T any](field func(*T) *int) Setter[T] {
	return func(row *T, value string) error {
		n, err := cast.ToIntE(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%q is not a whole number", value)
		}
		*field(row) = n
		return nil
	}
}

func setFloat[T any](field func(*T) *float64) Setter[T] {
	return func(row *T, value string) error {
		f, err := cast.ToFloat64E(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%q is not a number", value)
		}
		*field(row) = f
		return nil
	}
}

// money renders a number with two decimals.
func money[T any](v any, _ T) string {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%.2f", f)
}

// timestamp is a sortable accessor value for t; zero times are missing.
func timestamp(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// date renders a timestamp accessor value as a calendar date.
func date[T any](v any, _ T) string {
	s, _ := v.(string)
	if len(s) < len("2006-01-02") {
		return s
	}
	return s[:len("2006-01-02")]
}
