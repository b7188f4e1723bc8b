package types

import (
	"errors"
	"fmt"
)

// Adapter and entity errors.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidID         = errors.New("invalid entity ID")
	ErrInvalidData       = errors.New("invalid entity data")
	ErrUnknownEntityType = errors.New("unknown entity type")
	ErrAlreadyAttached   = errors.New("backend is already attached")
	ErrDetached          = errors.New("backend is detached")
)

// Grid configuration and state errors.
var (
	ErrDuplicateColumn   = errors.New("duplicate column id")
	ErrInvalidColumn     = errors.New("invalid column definition")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrColumnNotHideable = errors.New("column cannot be hidden")
	ErrColumnNotSortable = errors.New("column cannot be sorted")
	ErrInvalidOrder      = errors.New("column order must be a permutation of the column ids")
	ErrInvalidPageSize   = errors.New("page size must be positive")
	ErrInvalidOperator   = errors.New("operator not valid for column type")
	ErrInvalidOperand    = errors.New("invalid filter operand")
)

// Row action errors.
var (
	ErrMissingDialog   = errors.New("no dialog registered")
	ErrDuplicateDialog = errors.New("dialog already registered")
	ErrDialogBusy      = errors.New("dialog has a request in flight")
	ErrDialogClosed    = errors.New("dialog is closed")
)

// DefaultAdapterMessage is reported when an adapter fails without a message.
const DefaultAdapterMessage = "Something went wrong. Please try again."

// ConfigurationError reports an invalid column model or dialog registration.
// It is raised at setup time and is meant for developers, not end users.
type ConfigurationError struct {
	Component string // "columns", "dialogs", ...
	Reason    string
	Err       error
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Component, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Component, e.Err, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// InvalidFilterError reports a malformed filter. Filters that fail validation
// are treated as inactive rather than rejected.
type InvalidFilterError struct {
	ColumnID string
	Operator string
	Err      error
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("filter %s %s: %v", e.ColumnID, e.Operator, e.Err)
}

func (e *InvalidFilterError) Unwrap() error { return e.Err }

// AdapterError wraps a failed adapter call. Message is user facing and is
// carried verbatim from the adapter.
type AdapterError struct {
	Operation string
	Message   string
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// MessageOf returns the user facing message carried by an *AdapterError in
// err's chain, or DefaultAdapterMessage.
func MessageOf(err error) string {
	var ae *AdapterError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return DefaultAdapterMessage
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
