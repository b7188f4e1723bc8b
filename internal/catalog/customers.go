package catalog

import (
	"github.com/mokka-studios/datatable/pkg/grid"
	"github.com/mokka-studios/datatable/pkg/types"
)

// Customers describes the customers grid.
func Customers() Entity[types.Customer] {
	return Entity[types.Customer]{
		Name:    types.EntityCustomers,
		Columns: customerColumns,
		ID:      types.CustomerID,
		Setters: map[string]Setter[types.Customer]{
			"name":   setString(func(c *types.Customer) *string { return &c.Name }),
			"email":  setString(func(c *types.Customer) *string { return &c.Email }),
			"phone":  setString(func(c *types.Customer) *string { return &c.Phone }),
			"city":   setString(func(c *types.Customer) *string { return &c.City }),
			"status": setString(func(c *types.Customer) *string { return &c.Status }),
			"orders": setInt(func(c *types.Customer) *int { return &c.Orders }),
			"spent":  setFloat(func(c *types.Customer) *float64 { return &c.Spent }),
		},
	}
}

var customerColumns = grid.MustColumnModel(
	grid.Column[types.Customer]{
		ID: "name", Header: "Name", Type: grid.TypeText, DisableHiding: true,
		Accessor: func(c types.Customer) any { return c.Name },
	},
	grid.Column[types.Customer]{
		ID: "email", Header: "Email", Type: grid.TypeText,
		Accessor: func(c types.Customer) any { return c.Email },
	},
	grid.Column[types.Customer]{
		ID: "phone", Header: "Phone", Type: grid.TypeText,
		Accessor: func(c types.Customer) any { return c.Phone },
	},
	grid.Column[types.Customer]{
		ID: "city", Header: "City", Type: grid.TypeText,
		Accessor: func(c types.Customer) any { return c.City },
	},
	grid.Column[types.Customer]{
		ID: "status", Header: "Status", Type: grid.TypeEnum, Options: types.CustomerStatuses,
		Accessor: func(c types.Customer) any { return c.Status },
	},
	grid.Column[types.Customer]{
		ID: "orders", Header: "Orders", Type: grid.TypeNumber,
		Accessor: func(c types.Customer) any { return c.Orders },
	},
	grid.Column[types.Customer]{
		ID: "spent", Header: "Spent", Type: grid.TypeNumber, Render: money[types.Customer],
		Accessor: func(c types.Customer) any { return c.Spent },
	},
	grid.Column[types.Customer]{
		ID: "created_at", Header: "Created", Render: date[types.Customer],
		Accessor: func(c types.Customer) any { return timestamp(c.CreatedAt) },
	},
	grid.Column[types.Customer]{
		ID: "id", Header: "ID", DisableSorting: true,
		Accessor: func(c types.Customer) any { return c.ID },
	},
)
