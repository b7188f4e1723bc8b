package types

import "context"

// Repository is an Adapter that can also look an entity up by ID.
type Repository[T any] interface {
	Adapter[T]

	// Get returns the entity with the given ID. It returns ErrInvalidID for
	// an empty id and ErrNotFound when no entity matches.
	Get(ctx context.Context, id string) (T, error)
}

// Backend is backend-agnostic storage for the demo entities. Callers attach
// to a backend, use one repository per entity type, and detach when done.
type Backend interface {
	// Attach connects to the backend described by config. It creates the
	// DataDir if it does not exist and returns ErrAlreadyAttached if called
	// while attached.
	Attach(config Config) error

	// Detach releases backend resources. Multiple calls succeed. After
	// Detach, repository calls fail.
	Detach() error

	Customers() Repository[Customer]
	Products() Repository[Product]
	Categories() Repository[Category]
}
