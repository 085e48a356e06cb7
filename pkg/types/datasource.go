package types

import "context"

// DataSource is the capability set every vocabulary backend exposes, and
// that the repository exposes to its callers.
type DataSource interface {
	// List returns the full collection. The result is never nil.
	List(ctx context.Context) ([]Vocabulary, error)

	// Get returns the item with the given ID, or Absent when no such item exists.
	Get(ctx context.Context, id string) (Optional[Vocabulary], error)

	// Save creates or replaces the item with v.ID.
	Save(ctx context.Context, v Vocabulary) error

	// Complete and CompleteByID set the completed flag.
	Complete(ctx context.Context, v Vocabulary) error
	CompleteByID(ctx context.Context, id string) error

	// Activate and ActivateByID clear the completed flag.
	Activate(ctx context.Context, v Vocabulary) error
	ActivateByID(ctx context.Context, id string) error

	// ClearCompleted removes every completed item.
	ClearCompleted(ctx context.Context) error

	// DeleteAll removes every item.
	DeleteAll(ctx context.Context) error

	// Delete removes the item with the given ID. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Refresh marks cached state stale. Backends without a cache ignore it.
	Refresh()
}

// LocalStore is a DataSource with a durable, attachable lifecycle.
type LocalStore interface {
	DataSource

	// Attach connects the store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrStoreDetached.
	Detach() error
}
