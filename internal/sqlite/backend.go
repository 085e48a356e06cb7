// Package sqlite implements the local vocabulary store: SQLite is the query
// engine and vocabulary.jsonl in the data directory is the source of truth.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/wordbook/pkg/types"
)

const dbFileName = "wordbook.db"

// Compile-time interface check: Backend must implement LocalStore.
var _ types.LocalStore = (*Backend)(nil)

// Backend implements the LocalStore interface using SQLite as the query engine
// and a JSONL file as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	// Sync strategy state. Guarded by mu.
	syncStrategy  string        // effective sync strategy: immediate, on_close, batch
	batchSize     int           // number of writes before batch flush
	batchInterval time.Duration // time between batch flushes
	pendingWrites int           // writes applied to SQLite but not yet persisted to JSONL
	batchTimer    *time.Timer   // timer for interval-based batch flush
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, creates a fresh SQLite schema and
// loads vocabulary.jsonl into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	config.DataDir = dataDir

	// The database is rebuilt from JSONL on every attach.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	if err := initJSONLFile(dataDir); err != nil {
		db.Close()
		return err
	}

	if err := loadVocabularyJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.syncStrategy = config.GetSyncStrategy()
	b.batchSize = config.GetBatchSize()
	b.batchInterval = config.GetBatchInterval()
	b.pendingWrites = 0
	b.attached = true

	if b.syncStrategy == types.SyncBatch {
		b.batchTimer = time.AfterFunc(b.batchInterval, b.onBatchTimer)
	}

	return nil
}

// Detach releases all resources held by the backend.
// Pending JSONL writes are flushed before the connection closes.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.batchTimer != nil {
		b.batchTimer.Stop()
		b.batchTimer = nil
	}

	if err := b.flushLocked(context.Background()); err != nil {
		return err
	}

	if err := b.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	b.db = nil
	b.attached = false

	return nil
}

// recordWriteLocked counts a completed write and persists JSONL when the
// sync strategy calls for it. The caller must hold b.mu for writing.
func (b *Backend) recordWriteLocked(ctx context.Context) error {
	b.pendingWrites++
	switch b.syncStrategy {
	case types.SyncOnClose:
		return nil
	case types.SyncBatch:
		if b.pendingWrites < b.batchSize {
			return nil
		}
	}
	return b.flushLocked(ctx)
}

// flushLocked rewrites vocabulary.jsonl if any write is pending.
// The caller must hold b.mu for writing.
func (b *Backend) flushLocked(ctx context.Context) error {
	if b.pendingWrites == 0 {
		return nil
	}
	if err := persistVocabularyJSONL(ctx, b.db, b.config.DataDir); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}
	b.pendingWrites = 0
	return nil
}

// onBatchTimer flushes pending writes on the batch interval and re-arms the timer.
func (b *Backend) onBatchTimer() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached || b.batchTimer == nil {
		return
	}
	// A failed flush keeps pendingWrites; the next tick or Detach retries.
	_ = b.flushLocked(context.Background())
	b.batchTimer.Reset(b.batchInterval)
}
