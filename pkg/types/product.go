package types

import "time"

// Product statuses.
const (
	ProductAvailable    = "available"
	ProductOutOfStock   = "out_of_stock"
	ProductDiscontinued = "discontinued"
)

// ProductStatuses lists the valid product statuses in display order.
var ProductStatuses = []string{ProductAvailable, ProductOutOfStock, ProductDiscontinued}

// Product is an item in the catalog. CategoryID references a Category.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required,max=120"`
	Description string    `json:"description,omitempty"`
	CategoryID  string    `json:"category_id,omitempty"`
	Price       float64   `json:"price" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Status      string    `json:"status" validate:"required,oneof=available out_of_stock discontinued"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductID returns the row identity of a product.
func ProductID(p Product) string { return p.ID }
