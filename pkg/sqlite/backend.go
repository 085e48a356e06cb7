// Package sqlite provides the public API for the SQLite local store.
// This package exposes the factory function for creating local stores
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/wordbook/internal/sqlite"
	"github.com/mesh-intelligence/wordbook/pkg/types"
)

// NewBackend creates a new SQLite local store.
// The store is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".wordbook-db",
//	})
//	defer store.Detach()
func NewBackend() types.LocalStore {
	return sqlite.NewBackend()
}
