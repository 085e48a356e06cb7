package types

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds backend selection and parameters for LocalStore.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend" validate:"required,oneof=sqlite"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// SyncStrategy controls when the JSONL source of truth is rewritten.
	// Empty means SyncImmediate.
	SyncStrategy  string        `json:"sync_strategy,omitempty" yaml:"sync_strategy,omitempty" validate:"omitempty,oneof=immediate on_close batch"`
	BatchSize     int           `json:"batch_size,omitempty" yaml:"batch_size,omitempty" validate:"gte=0"`
	BatchInterval time.Duration `json:"batch_interval,omitempty" yaml:"batch_interval,omitempty" validate:"gte=0"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Sync strategies for the local store.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
	SyncBatch     = "batch"
)

// Batch defaults applied when the corresponding Config field is zero.
const (
	DefaultBatchSize     = 10
	DefaultBatchInterval = 5 * time.Second
)

// Config validation errors.
var (
	ErrBackendEmpty         = errors.New("backend must not be empty")
	ErrBackendUnknown       = errors.New("unknown backend")
	ErrSyncStrategyUnknown  = errors.New("unknown sync strategy")
	ErrBatchSizeInvalid     = errors.New("batch size must not be negative")
	ErrBatchIntervalInvalid = errors.New("batch interval must not be negative")
)

var validate = validator.New()

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.StructField() {
	case "Backend":
		if fe.Tag() == "required" {
			return ErrBackendEmpty
		}
		return ErrBackendUnknown
	case "SyncStrategy":
		return ErrSyncStrategyUnknown
	case "BatchSize":
		return ErrBatchSizeInvalid
	case "BatchInterval":
		return ErrBatchIntervalInvalid
	}
	return err
}

// GetSyncStrategy returns the effective sync strategy.
func (c Config) GetSyncStrategy() string {
	if c.SyncStrategy == "" {
		return SyncImmediate
	}
	return c.SyncStrategy
}

// GetBatchSize returns the effective batch size.
func (c Config) GetBatchSize() int {
	if c.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}

// GetBatchInterval returns the effective batch interval.
func (c Config) GetBatchInterval() time.Duration {
	if c.BatchInterval <= 0 {
		return DefaultBatchInterval
	}
	return c.BatchInterval
}
