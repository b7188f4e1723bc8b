package catalog

import (
	"github.com/mokka-studios/datatable/pkg/grid"
	"github.com/mokka-studios/datatable/pkg/types"
)

// Categories describes the categories grid.
func Categories() Entity[types.Category] {
	return Entity[types.Category]{
		Name:    types.EntityCategories,
		Columns: categoryColumns,
		ID:      types.CategoryID,
		Setters: map[string]Setter[types.Category]{
			"name":        setString(func(c *types.Category) *string { return &c.Name }),
			"description": setString(func(c *types.Category) *string { return &c.Description }),
			"ordinal":     setInt(func(c *types.Category) *int { return &c.Ordinal }),
		},
	}
}

var categoryColumns = grid.MustColumnModel(
	grid.Column[types.Category]{
		ID: "name", Header: "Name", Type: grid.TypeText, DisableHiding: true,
		Accessor: func(c types.Category) any { return c.Name },
	},
	grid.Column[types.Category]{
		ID: "description", Header: "Description", Type: grid.TypeText, DisableSorting: true,
		Accessor: func(c types.Category) any { return c.Description },
	},
	grid.Column[types.Category]{
		ID: "ordinal", Header: "Order", Type: grid.TypeNumber,
		Accessor: func(c types.Category) any { return c.Ordinal },
	},
	grid.Column[types.Category]{
		ID: "created_at", Header: "Created", Render: date[types.Category],
		Accessor: func(c types.Category) any { return timestamp(c.CreatedAt) },
	},
	grid.Column[types.Category]{
		ID: "id", Header: "ID", DisableSorting: true,
		Accessor: func(c types.Category) any { return c.ID },
	},
)
