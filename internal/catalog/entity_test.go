package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mokka-studios/datatable/pkg/grid"
	"github.com/mokka-studios/datatable/pkg/types"
)

func TestAssign(t *testing.T) {
	e := Customers()
	var c types.Customer
	require.NoError(t, e.Assign(&c, []string{"name= Ada Lovelace ", "orders=14", "spent=2380.5", "city=London"}))
	assert.Equal(t, "Ada Lovelace", c.Name)
	assert.Equal(t, 14, c.Orders)
	assert.Equal(t, 2380.5, c.Spent)
	assert.Equal(t, "London", c.City)

	tests := []struct {
		name       string
		assignment string
		wantErr    error
		contains   string
	}{
		{"unknown field", "age=3", ErrUnknownField, "fields: city, email"},
		{"missing equals", "name", ErrInvalidAssignment, `"name"`},
		{"empty key", "=x", ErrInvalidAssignment, ""},
		{"bad number", "orders=many", nil, `orders: "many" is not a whole number`},
		{"bad float", "spent=lots", nil, `spent: "lots" is not a number`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Assign(&c, []string{tt.assignment})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestAssignEmptyValueClears(t *testing.T) {
	c := types.Customer{City: "London"}
	require.NoError(t, Customers().Assign(&c, []string{"city="}))
	assert.Empty(t, c.City)
}

func TestProductCategorySetter(t *testing.T) {
	cats := []types.Category{{ID: "c1", Name: "Electronics"}, {ID: "c2", Name: "Kitchen"}}
	e := Products(cats)

	var p types.Product
	require.NoError(t, e.Set(&p, "category", "kitchen"))
	assert.Equal(t, "c2", p.CategoryID)
	require.NoError(t, e.Set(&p, "category", "c1"))
	assert.Equal(t, "c1", p.CategoryID)
	require.NoError(t, e.Set(&p, "category", ""))
	assert.Empty(t, p.CategoryID)

	err := e.Set(&p, "category", "Garden")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no category named "Garden"`)

	col, ok := e.Columns.Resolve("category")
	require.True(t, ok)
	assert.Equal(t, []string{"Electronics", "Kitchen"}, col.Options)
	assert.Equal(t, "Kitchen", col.Cell(types.Product{CategoryID: "c2"}))
	assert.Empty(t, col.Cell(types.Product{CategoryID: "gone"}))
}

func TestCustomerColumns(t *testing.T) {
	m := Customers().Columns
	c := types.Customer{
		ID: "id-1", Name: "Ada", Status: types.CustomerActive, Spent: 2380.5,
		CreatedAt: time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC),
	}

	cells := make(map[string]string)
	for _, col := range m.Columns() {
		cells[col.ID] = col.Cell(c)
	}
	assert.Equal(t, "2380.50", cells["spent"])
	assert.Equal(t, "2024-03-09", cells["created_at"])
	assert.Equal(t, "0", cells["orders"])

	name, _ := m.Resolve("name")
	assert.False(t, name.Hideable())
	created, _ := m.Resolve("created_at")
	assert.False(t, created.Filterable())
	assert.True(t, created.Sortable())
	id, _ := m.Resolve("id")
	assert.False(t, id.Sortable())

	status, _ := m.Resolve("status")
	assert.Equal(t, grid.TypeEnum, status.Type)
	assert.Equal(t, types.CustomerStatuses, status.Options)
}

func TestCreatedColumnSortsByTime(t *testing.T) {
	m := Customers().Columns
	early := types.Customer{Name: "early", CreatedAt: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)}
	late := types.Customer{Name: "late", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	unset := types.Customer{Name: "unset"}

	sorted := grid.SortRows([]types.Customer{late, unset, early}, &grid.SortSpec{ColumnID: "created_at", Direction: grid.Asc}, m)
	assert.Equal(t, []string{"early", "late", "unset"}, []string{sorted[0].Name, sorted[1].Name, sorted[2].Name})
}
