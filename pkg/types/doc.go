// Package types defines the entities, the CRUD Adapter contract, backend
// configuration and the error taxonomy shared by the grid engine, the row
// action dispatcher and the storage backends.
package types
