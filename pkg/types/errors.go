package types

import "errors"

// Entity and argument errors.
var (
	ErrInvalidID     = errors.New("invalid vocabulary ID")
	ErrNilDataSource = errors.New("data source must not be nil")
)

// Local store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
