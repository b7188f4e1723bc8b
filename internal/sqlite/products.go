package sqlite

import (
	"context"
	"time"

	"github.com/mokka-studios/datatable/pkg/types"
)

var productSchema = schema[types.Product]{
	table:   "products",
	file:    productsJSONL,
	noun:    "Product",
	columns: []string{"id", "name", "description", "category_id", "price", "stock", "status", "created_at", "updated_at"},
	orderBy: "created_at, id",

	id:      types.ProductID,
	setID:   func(p *types.Product, id string) { p.ID = id },
	created: func(p types.Product) time.Time { return p.CreatedAt },
	stamp: func(p *types.Product, created, updated time.Time) {
		p.CreatedAt, p.UpdatedAt = created, updated
	},
	values: func(p types.Product) []any {
		return []any{p.ID, p.Name, p.Description, p.CategoryID, p.Price, p.Stock, p.Status,
			formatTime(p.CreatedAt), formatTime(p.UpdatedAt)}
	},
	scan: func(s scanner) (types.Product, error) {
		var (
			p                types.Product
			created, updated string
		)
		if err := s.Scan(&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.Price, &p.Stock, &p.Status, &created, &updated); err != nil {
			return p, err
		}
		return p, parseTimes(&p.CreatedAt, created, &p.UpdatedAt, updated)
	},
	check: productCategoryExists,
}

// productCategoryExists rejects a reference to a missing category. An empty
// category is allowed.
func productCategoryExists(ctx context.Context, q querier, p types.Product) error {
	if p.CategoryID == "" {
		return nil
	}
	var n int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories WHERE id = ?", p.CategoryID).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return rejectf("Category %s does not exist.", p.CategoryID)
	}
	return nil
}
