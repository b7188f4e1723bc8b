package types

import "time"

// Category groups products.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required,max=80"`
	Description string    `json:"description,omitempty"`
	Ordinal     int       `json:"ordinal" validate:"gte=0"` // lower ordinals sort first
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryID returns the row identity of a category.
func CategoryID(c Category) string { return c.ID }
