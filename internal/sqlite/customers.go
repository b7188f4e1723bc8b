package sqlite

import (
	"context"
	"time"

	"github.com/mokka-studios/datatable/pkg/types"
)

var customerSchema = schema[types.Customer]{
	table:   "customers",
	file:    customersJSONL,
	noun:    "Customer",
	columns: []string{"id", "name", "email", "phone", "city", "status", "orders", "spent", "created_at", "updated_at"},
	orderBy: "created_at, id",

	id:      types.CustomerID,
	setID:   func(c *types.Customer, id string) { c.ID = id },
	created: func(c types.Customer) time.Time { return c.CreatedAt },
	stamp: func(c *types.Customer, created, updated time.Time) {
		c.CreatedAt, c.UpdatedAt = created, updated
	},
	values: func(c types.Customer) []any {
		return []any{c.ID, c.Name, c.Email, c.Phone, c.City, c.Status, c.Orders, c.Spent,
			formatTime(c.CreatedAt), formatTime(c.UpdatedAt)}
	},
	scan: func(s scanner) (types.Customer, error) {
		var (
			c                types.Customer
			created, updated string
		)
		if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.City, &c.Status, &c.Orders, &c.Spent, &created, &updated); err != nil {
			return c, err
		}
		return c, parseTimes(&c.CreatedAt, created, &c.UpdatedAt, updated)
	},
	check: uniqueCustomerEmail,
}

// uniqueCustomerEmail rejects an email already used by another customer.
func uniqueCustomerEmail(ctx context.Context, q querier, c types.Customer) error {
	var n int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM customers WHERE lower(email) = lower(?) AND id <> ?", c.Email, c.ID).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return rejectf("A customer with email %s already exists.", c.Email)
	}
	return nil
}

// parseTimes parses pairs of destination and RFC 3339 text.
func parseTimes(pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		t, err := parseTime(pairs[i+1].(string))
		if err != nil {
			return err
		}
		*pairs[i].(*time.Time) = t
	}
	return nil
}
