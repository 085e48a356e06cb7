// This file implements JSONL loading at attach time.

package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
)

// loadVocabularyJSONL reads vocabulary.jsonl and inserts every record into
// the vocabulary table inside one transaction. Malformed lines, records
// without an entryid and records that violate constraints (duplicate IDs)
// are skipped. Unknown fields are ignored.
func loadVocabularyJSONL(db *sql.DB, dataDir string) error {
	records, err := readJSONL(filepath.Join(dataDir, vocabularyJSONL))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO vocabulary (entryid, title, description, type, pronounce, completed) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("preparing vocabulary insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var v vocabularyJSON
		if err := json.Unmarshal(rec, &v); err != nil {
			continue
		}
		if v.EntryID == "" {
			continue
		}
		if _, err := stmt.Exec(v.EntryID, v.Title, v.Description, v.Type, v.Pronounce, boolToInt(v.Completed)); err != nil {
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}
