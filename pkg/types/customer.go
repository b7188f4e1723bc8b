package types

import "time"

// Customer statuses.
const (
	CustomerActive   = "active"
	CustomerInactive = "inactive"
	CustomerLead     = "lead"
)

// CustomerStatuses lists the valid customer statuses in display order.
var CustomerStatuses = []string{CustomerActive, CustomerInactive, CustomerLead}

// Customer is a person or company buying from the store.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=120"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone,omitempty" validate:"omitempty,max=32"`
	City      string    `json:"city,omitempty"`
	Status    string    `json:"status" validate:"required,oneof=active inactive lead"`
	Orders    int       `json:"orders" validate:"gte=0"`
	Spent     float64   `json:"spent" validate:"gte=0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerID returns the row identity of a customer.
func CustomerID(c Customer) string { return c.ID }
