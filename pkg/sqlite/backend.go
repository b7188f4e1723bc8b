// Package sqlite provides the public factory for the SQLite backend while
// keeping its implementation internal.
package sqlite

import (
	"github.com/sirupsen/logrus"

	"github.com/mokka-studios/datatable/internal/sqlite"
	"github.com/mokka-studios/datatable/pkg/types"
)

// NewBackend creates a detached SQLite backend. Call Attach with a Config to
// initialize it.
//
// Example:
//
//	backend := sqlite.NewBackend(logger)
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "data",
//	})
//	defer backend.Detach()
func NewBackend(logger logrus.FieldLogger) types.Backend {
	if logger == nil {
		return sqlite.NewBackend()
	}
	return sqlite.NewBackend(sqlite.WithLogger(logger))
}
