// This file implements the DataSource operations over the vocabulary table.

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/wordbook/pkg/types"
)

const selectVocabulary = "SELECT entryid, title, description, type, pronounce, completed FROM vocabulary"

// List returns every item in insertion order.
func (b *Backend) List(ctx context.Context) ([]types.Vocabulary, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.QueryContext(ctx, selectVocabulary+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("listing vocabulary: %w", err)
	}
	defer rows.Close()

	results := []types.Vocabulary{}
	for rows.Next() {
		v, err := hydrateVocabulary(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating vocabulary: %w", err)
		}
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vocabulary: %w", err)
	}
	return results, nil
}

// Get returns the item with the given ID, or Absent.
func (b *Backend) Get(ctx context.Context, id string) (types.Optional[types.Vocabulary], error) {
	none := types.Absent[types.Vocabulary]()
	if id == "" {
		return none, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return none, types.ErrStoreDetached
	}

	row := b.db.QueryRowContext(ctx, selectVocabulary+" WHERE entryid = ?", id)
	v, err := hydrateVocabulary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return none, nil
	}
	if err != nil {
		return none, fmt.Errorf("getting vocabulary %s: %w", id, err)
	}
	return types.Present(v), nil
}

// Save inserts the item or replaces every column of the existing row.
// The row keeps its position in list order.
func (b *Backend) Save(ctx context.Context, v types.Vocabulary) error {
	if v.ID == "" {
		return types.ErrInvalidID
	}
	return b.write(ctx, "saving vocabulary",
		`INSERT INTO vocabulary (entryid, title, description, type, pronounce, completed)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(entryid) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    type = excluded.type,
    pronounce = excluded.pronounce,
    completed = excluded.completed`,
		v.ID, v.Title, v.Description, v.Type, v.Pronounce, boolToInt(v.Completed),
	)
}

// Complete sets the completed flag of v's row.
func (b *Backend) Complete(ctx context.Context, v types.Vocabulary) error {
	return b.CompleteByID(ctx, v.ID)
}

// CompleteByID sets the completed flag of the row with the given ID.
func (b *Backend) CompleteByID(ctx context.Context, id string) error {
	return b.setCompleted(ctx, id, true)
}

// Activate clears the completed flag of v's row.
func (b *Backend) Activate(ctx context.Context, v types.Vocabulary) error {
	return b.ActivateByID(ctx, v.ID)
}

// ActivateByID clears the completed flag of the row with the given ID.
func (b *Backend) ActivateByID(ctx context.Context, id string) error {
	return b.setCompleted(ctx, id, false)
}

// ClearCompleted deletes every completed row.
func (b *Backend) ClearCompleted(ctx context.Context) error {
	return b.write(ctx, "clearing completed vocabulary", "DELETE FROM vocabulary WHERE completed = 1")
}

// DeleteAll deletes every row.
func (b *Backend) DeleteAll(ctx context.Context) error {
	return b.write(ctx, "deleting all vocabulary", "DELETE FROM vocabulary")
}

// Delete deletes the row with the given ID.
func (b *Backend) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	return b.write(ctx, "deleting vocabulary", "DELETE FROM vocabulary WHERE entryid = ?", id)
}

// Refresh is a no-op; invalidation belongs to the repository.
func (b *Backend) Refresh() {}

func (b *Backend) setCompleted(ctx context.Context, id string, completed bool) error {
	if id == "" {
		return types.ErrInvalidID
	}
	return b.write(ctx, "updating completed flag",
		"UPDATE vocabulary SET completed = ? WHERE entryid = ?",
		boolToInt(completed), id,
	)
}

// write executes a single mutating statement and records it for JSONL persistence.
func (b *Backend) write(ctx context.Context, op, query string, args ...any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	if _, err := b.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return b.recordWriteLocked(ctx)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateVocabulary converts a vocabulary row into a types.Vocabulary.
// NULL text columns hydrate to empty strings.
func hydrateVocabulary(s rowScanner) (types.Vocabulary, error) {
	var (
		id                                 string
		title, description, typ, pronounce sql.NullString
		completed                          int64
	)
	if err := s.Scan(&id, &title, &description, &typ, &pronounce, &completed); err != nil {
		return types.Vocabulary{}, err
	}
	return types.NewFullVocabulary(id, title.String, description.String, typ.String, pronounce.String, completed == 1), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
