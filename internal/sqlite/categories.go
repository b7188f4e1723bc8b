package sqlite

import (
	"context"
	"time"

	"github.com/mokka-studios/datatable/pkg/types"
)

var categorySchema = schema[types.Category]{
	table:   "categories",
	file:    categoriesJSONL,
	noun:    "Category",
	columns: []string{"id", "name", "description", "ordinal", "created_at"},
	orderBy: "ordinal, name",

	id:      types.CategoryID,
	setID:   func(c *types.Category, id string) { c.ID = id },
	created: func(c types.Category) time.Time { return c.CreatedAt },
	stamp:   func(c *types.Category, created, _ time.Time) { c.CreatedAt = created },
	values: func(c types.Category) []any {
		return []any{c.ID, c.Name, c.Description, c.Ordinal, formatTime(c.CreatedAt)}
	},
	scan: func(s scanner) (types.Category, error) {
		var (
			c       types.Category
			created string
		)
		if err := s.Scan(&c.ID, &c.Name, &c.Description, &c.Ordinal, &created); err != nil {
			return c, err
		}
		return c, parseTimes(&c.CreatedAt, created)
	},
	check: uniqueCategoryName,
	inUse: categoryInUse,
}

func uniqueCategoryName(ctx context.Context, q querier, c types.Category) error {
	var n int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categories WHERE lower(name) = lower(?) AND id <> ?", c.Name, c.ID).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return rejectf("Category %q already exists.", c.Name)
	}
	return nil
}

// categoryInUse rejects deleting a category that products still reference.
func categoryInUse(ctx context.Context, q querier, c types.Category) error {
	var n int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM products WHERE category_id = ?", c.ID).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return rejectf("Category %q is used by %d products.", c.Name, n)
	}
	return nil
}
