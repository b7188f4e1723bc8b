package grid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type person struct {
	ID     int
	Name   string
	Email  string
	Age    *int
	Status string
	Score  float64
}

func intPtr(n int) *int { return &n }

func personID(p person) int { return p.ID }

func personColumns() []Column[person] {
	return []Column[person]{
		{ID: "name", Header: "Name", Type: TypeText, Accessor: func(p person) any { return p.Name }},
		{ID: "email", Header: "Email", Type: TypeText, Accessor: func(p person) any { return p.Email }},
		{ID: "age", Header: "Age", Type: TypeNumber, Accessor: func(p person) any { return p.Age }},
		{ID: "status", Header: "Status", Type: TypeEnum, Accessor: func(p person) any { return p.Status },
			Options: []string{"active", "inactive"}},
		{ID: "score", Header: "Score", Type: TypeNumber, Accessor: func(p person) any { return p.Score },
			Render: func(v any, _ person) string { return fmt.Sprintf("%.1f", v) }},
		{ID: "id", Header: "ID", Accessor: func(p person) any { return p.ID }, DisableHiding: true, DisableSorting: true},
	}
}

func personModel(t *testing.T) *ColumnModel[person] {
	t.Helper()
	m, err := NewColumnModel(personColumns()...)
	require.NoError(t, err)
	return m
}

// numbered returns n people with IDs 1..n named p01..pNN.
func numbered(n int) []person {
	out := make([]person, n)
	for i := range out {
		out[i] = person{ID: i + 1, Name: fmt.Sprintf("p%02d", i+1), Status: "active", Age: intPtr(20 + i)}
	}
	return out
}

func ids(rows []person) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
