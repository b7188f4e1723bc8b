package types

import "context"

// Adapter provides entity-specific CRUD operations for a single entity type.
// The grid and the row action dispatcher depend only on the result shapes,
// never on the transport behind them.
type Adapter[T any] interface {
	// List returns every entity. A non-empty Error means the load failed.
	List(ctx context.Context) ListResult[T]

	// Create persists a new entity and returns it with its generated ID.
	Create(ctx context.Context, entity T) Result[T]

	// Update replaces the stored entity that has the same identity.
	Update(ctx context.Context, entity T) Result[T]

	// Delete removes the stored entity that has the same identity.
	Delete(ctx context.Context, entity T) Result[T]
}

// ListResult is the outcome of Adapter.List.
type ListResult[T any] struct {
	Data  []T
	Error string
}

// Result is the outcome of a mutating adapter call. Message is user facing;
// on success Entity holds the stored entity when the adapter returns one.
type Result[T any] struct {
	Success bool
	Message string
	Entity  *T
}

// Succeeded builds a successful Result carrying the stored entity.
func Succeeded[T any](entity T, message string) Result[T] {
	return Result[T]{Success: true, Message: message, Entity: &entity}
}

// Failed builds a failed Result carrying a user facing message.
func Failed[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

// Err returns an *AdapterError for a failed result and nil otherwise. An
// empty message is replaced with DefaultAdapterMessage.
func (r Result[T]) Err(operation string) error {
	if r.Success {
		return nil
	}
	msg := r.Message
	if msg == "" {
		msg = DefaultAdapterMessage
	}
	return &AdapterError{Operation: operation, Message: msg}
}

// Err returns an *AdapterError when the list call failed.
func (r ListResult[T]) Err() error {
	if r.Error == "" {
		return nil
	}
	return &AdapterError{Operation: "list", Message: r.Error}
}
