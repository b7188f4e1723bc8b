package grid

import (
	"fmt"
	"strings"

	"github.com/mokka-studios/datatable/pkg/types"
)

// Operator is a named comparison rule scoped to a value type.
type Operator string

// Text operators.
const (
	OpContains   Operator = "contains"
	OpEquals     Operator = "equals"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
)

// Number operators. OpEquals is shared with text.
const (
	OpNotEquals   Operator = "notEquals"
	OpGreaterThan Operator = "gt"
	OpLessThan    Operator = "lt"
	OpBetween     Operator = "between"
)

// Enum operators.
const (
	OpMemberOf Operator = "memberOf"
)

// operatorSets is the single place where value types meet their operators.
// The first operator of each set is the default for new filters.
var operatorSets = map[ValueType][]Operator{
	TypeText:   {OpContains, OpEquals, OpStartsWith, OpEndsWith},
	TypeNumber: {OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpBetween},
	TypeEnum:   {OpMemberOf},
}

// OperatorsFor returns the operators allowed for a value type.
func OperatorsFor(t ValueType) []Operator {
	ops := operatorSets[t]
	out := make([]Operator, len(ops))
	copy(out, ops)
	return out
}

// DefaultOperator returns the operator a fresh filter on a column of type t
// starts with, or "" for types without operators.
func DefaultOperator(t ValueType) Operator {
	if ops := operatorSets[t]; len(ops) > 0 {
		return ops[0]
	}
	return ""
}

// Supports reports whether op belongs to the operator set of t.
func Supports(t ValueType, op Operator) bool {
	for _, o := range operatorSets[t] {
		if o == op {
			return true
		}
	}
	return false
}

// Filter is a predicate on one column. Operand is a scalar for most
// operators, a two element slice for OpBetween and a slice for OpMemberOf.
type Filter struct {
	ColumnID string   `json:"column_id"`
	Operator Operator `json:"operator"`
	Operand  any      `json:"operand"`
}

// NewFilter builds a filter.
func NewFilter(columnID string, op Operator, operand any) Filter {
	return Filter{ColumnID: columnID, Operator: op, Operand: operand}
}

// Contains builds a case-insensitive substring filter.
func Contains(columnID, text string) Filter {
	return Filter{ColumnID: columnID, Operator: OpContains, Operand: text}
}

// Between builds an inclusive numeric range filter.
func Between(columnID string, low, high any) Filter {
	return Filter{ColumnID: columnID, Operator: OpBetween, Operand: []any{low, high}}
}

// MemberOf builds an enum filter matching any of values.
func MemberOf(columnID string, values ...string) Filter {
	return Filter{ColumnID: columnID, Operator: OpMemberOf, Operand: values}
}

func (f Filter) String() string {
	return fmt.Sprintf("%s %s %v", f.ColumnID, f.Operator, f.Operand)
}

// predicate tests a raw column value.
type predicate func(v any) bool

// compiled is a validated, active filter bound to its column.
type compiled[T any] struct {
	column Column[T]
	match  predicate
}

func (c compiled[T]) test(row T) bool {
	return c.match(c.column.Value(row))
}

func invalidFilter(f Filter, err error, reason string) error {
	if reason != "" {
		err = fmt.Errorf("%w: %s", err, reason)
	}
	return &types.InvalidFilterError{ColumnID: f.ColumnID, Operator: string(f.Operator), Err: err}
}

// compile validates f against the model. It returns active=false without an
// error for filters whose operand has not been entered.
func compile[T any](f Filter, m *ColumnModel[T]) (compiled[T], bool, error) {
	col, ok := m.Resolve(f.ColumnID)
	if !ok {
		return compiled[T]{}, false, invalidFilter(f, types.ErrUnknownColumn, "")
	}
	if !col.Filterable() {
		return compiled[T]{}, false, invalidFilter(f, types.ErrInvalidOperator, "column is not filterable")
	}
	if !Supports(col.Type, f.Operator) {
		return compiled[T]{}, false, invalidFilter(f, types.ErrInvalidOperator, string(col.Type)+" column")
	}

	var (
		match predicate
		err   error
	)
	switch col.Type {
	case TypeText:
		match, err = textPredicate(f)
	case TypeNumber:
		match, err = numberPredicate(f)
	case TypeEnum:
		match, err = enumPredicate(f)
	}
	if err != nil || match == nil {
		return compiled[T]{}, false, err
	}
	return compiled[T]{column: col, match: match}, true, nil
}

func textPredicate(f Filter) (predicate, error) {
	if blank(f.Operand) {
		return nil, nil
	}
	needle := strings.ToLower(FormatValue(f.Operand))
	var test func(hay string) bool
	switch f.Operator {
	case OpContains:
		test = func(hay string) bool { return strings.Contains(hay, needle) }
	case OpEquals:
		test = func(hay string) bool { return hay == needle }
	case OpStartsWith:
		test = func(hay string) bool { return strings.HasPrefix(hay, needle) }
	case OpEndsWith:
		test = func(hay string) bool { return strings.HasSuffix(hay, needle) }
	}
	return func(v any) bool {
		s, _ := textOf(v)
		return test(strings.ToLower(s))
	}, nil
}

func numberPredicate(f Filter) (predicate, error) {
	if f.Operator == OpBetween {
		bounds := operandList(f.Operand)
		if len(bounds) == 0 {
			return nil, nil
		}
		if len(bounds) != 2 || blank(bounds[0]) || blank(bounds[1]) {
			return nil, invalidFilter(f, types.ErrInvalidOperand, "between requires a low and a high bound")
		}
		low, okLow := numberOf(bounds[0])
		high, okHigh := numberOf(bounds[1])
		if !okLow || !okHigh {
			return nil, invalidFilter(f, types.ErrInvalidOperand, "bounds must be numeric")
		}
		return func(v any) bool {
			n, ok := numberOf(v)
			return ok && n >= low && n <= high
		}, nil
	}

	if blank(f.Operand) {
		return nil, nil
	}
	want, ok := numberOf(f.Operand)
	if !ok {
		return nil, invalidFilter(f, types.ErrInvalidOperand, "operand must be numeric")
	}
	var test func(n float64) bool
	switch f.Operator {
	case OpEquals:
		test = func(n float64) bool { return n == want }
	case OpNotEquals:
		test = func(n float64) bool { return n != want }
	case OpGreaterThan:
		test = func(n float64) bool { return n > want }
	case OpLessThan:
		test = func(n float64) bool { return n < want }
	}
	return func(v any) bool {
		n, ok := numberOf(v)
		return ok && test(n)
	}, nil
}

func enumPredicate(f Filter) (predicate, error) {
	members := make(map[string]struct{})
	for _, v := range operandList(f.Operand) {
		if blank(v) {
			continue
		}
		members[FormatValue(v)] = struct{}{}
	}
	// Clearing every checkbox removes the filter.
	if len(members) == 0 {
		return nil, nil
	}
	return func(v any) bool {
		s, ok := textOf(v)
		if !ok {
			return false
		}
		_, hit := members[s]
		return hit
	}, nil
}

// ValidateFilter reports why f cannot be applied, as a
// *types.InvalidFilterError, or nil when f is valid or simply not entered.
func ValidateFilter[T any](f Filter, m *ColumnModel[T]) error {
	_, _, err := compile(f, m)
	return err
}

// IsActive reports whether f takes part in evaluation. Empty operands and
// invalid filters are inactive.
func IsActive[T any](f Filter, m *ColumnModel[T]) bool {
	_, active, err := compile(f, m)
	return active && err == nil
}

// Matches reports whether row satisfies f. Inactive filters match every row.
func Matches[T any](row T, f Filter, m *ColumnModel[T]) bool {
	c, active, err := compile(f, m)
	if err != nil || !active {
		return true
	}
	return c.test(row)
}

// EvaluateAll is the logical AND of every active filter. An empty list
// matches every row.
func EvaluateAll[T any](row T, filters []Filter, m *ColumnModel[T]) bool {
	for _, f := range filters {
		if !Matches(row, f, m) {
			return false
		}
	}
	return true
}

// compileAll compiles the active filters of a list, dropping inactive and
// invalid ones.
func compileAll[T any](filters []Filter, m *ColumnModel[T]) []compiled[T] {
	out := make([]compiled[T], 0, len(filters))
	for _, f := range filters {
		c, active, err := compile(f, m)
		if err != nil || !active {
			continue
		}
		out = append(out, c)
	}
	return out
}

// matchSearch reports whether any text or enum column of row contains
// needle, which must already be lower-cased.
func matchSearch[T any](row T, needle string, m *ColumnModel[T]) bool {
	for _, col := range m.columns {
		if !col.Filterable() || col.Type == TypeNumber {
			continue
		}
		s, ok := textOf(col.Value(row))
		if ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// ReplaceColumnFilter returns filters with every filter on f.ColumnID
// replaced by f. The first replaced position is kept; f is appended when the
// column had no filter.
func ReplaceColumnFilter(filters []Filter, f Filter) []Filter {
	out := make([]Filter, 0, len(filters)+1)
	placed := false
	for _, existing := range filters {
		if existing.ColumnID != f.ColumnID {
			out = append(out, existing)
			continue
		}
		if !placed {
			out = append(out, f)
			placed = true
		}
	}
	if !placed {
		out = append(out, f)
	}
	return out
}

// RemoveColumnFilters returns filters without any filter on columnID.
func RemoveColumnFilters(filters []Filter, columnID string) []Filter {
	out := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f.ColumnID != columnID {
			out = append(out, f)
		}
	}
	return out
}
