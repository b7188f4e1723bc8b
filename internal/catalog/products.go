package catalog

import (
	"fmt"
	"strings"

	"github.com/mokka-studios/datatable/pkg/grid"
	"github.com/mokka-studios/datatable/pkg/types"
)

// Products describes the products grid. The category column shows
// category names and offers them as filter options, so the grid is built
// from the current categories.
func Products(categories []types.Category) Entity[types.Product] {
	names := make(map[string]string, len(categories))
	ids := make(map[string]string, len(categories))
	options := make([]string, 0, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
		ids[strings.ToLower(c.Name)] = c.ID
		options = append(options, c.Name)
	}

	setCategory := func(p *types.Product, value string) error {
		value = strings.TrimSpace(value)
		switch {
		case value == "":
			p.CategoryID = ""
		case names[value] != "":
			p.CategoryID = value
		case ids[strings.ToLower(value)] != "":
			p.CategoryID = ids[strings.ToLower(value)]
		default:
			return fmt.Errorf("no category named %q", value)
		}
		return nil
	}

	return Entity[types.Product]{
		Name:    types.EntityProducts,
		Columns: productColumns(names, options),
		ID:      types.ProductID,
		Setters: map[string]Setter[types.Product]{
			"name":        setString(func(p *types.Product) *string { return &p.Name }),
			"description": setString(func(p *types.Product) *string { return &p.Description }),
			"category":    setCategory,
			"price":       setFloat(func(p *types.Product) *float64 { return &p.Price }),
			"stock":       setInt(func(p *types.Product) *int { return &p.Stock }),
			"status":      setString(func(p *types.Product) *string { return &p.Status }),
		},
	}
}

func productColumns(categoryNames map[string]string, options []string) *grid.ColumnModel[types.Product] {
	return grid.MustColumnModel(
		grid.Column[types.Product]{
			ID: "name", Header: "Name", Type: grid.TypeText, DisableHiding: true,
			Accessor: func(p types.Product) any { return p.Name },
		},
		grid.Column[types.Product]{
			ID: "category", Header: "Category", Type: grid.TypeEnum, Options: options,
			Accessor: func(p types.Product) any { return categoryNames[p.CategoryID] },
		},
		grid.Column[types.Product]{
			ID: "price", Header: "Price", Type: grid.TypeNumber, Render: money[types.Product],
			Accessor: func(p types.Product) any { return p.Price },
		},
		grid.Column[types.Product]{
			ID: "stock", Header: "Stock", Type: grid.TypeNumber,
			Accessor: func(p types.Product) any { return p.Stock },
		},
		grid.Column[types.Product]{
			ID: "status", Header: "Status", Type: grid.TypeEnum, Options: types.ProductStatuses,
			Accessor: func(p types.Product) any { return p.Status },
		},
		grid.Column[types.Product]{
			ID: "description", Header: "Description", Type: grid.TypeText, DisableSorting: true,
			Accessor: func(p types.Product) any { return p.Description },
		},
		grid.Column[types.Product]{
			ID: "created_at", Header: "Created", Render: date[types.Product],
			Accessor: func(p types.Product) any { return timestamp(p.CreatedAt) },
		},
		grid.Column[types.Product]{
			ID: "id", Header: "ID", DisableSorting: true,
			Accessor: func(p types.Product) any { return p.ID },
		},
	)
}
