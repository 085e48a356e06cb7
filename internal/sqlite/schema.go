package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema version 1. Upgrades are not required at this version.
const (
	createVocabulary = `CREATE TABLE vocabulary (
    entryid TEXT PRIMARY KEY,
    title TEXT,
    description TEXT,
    type TEXT,
    pronounce TEXT,
    completed INTEGER NOT NULL DEFAULT 0
);`

	idxVocabularyCompleted = `CREATE INDEX idx_vocabulary_completed ON vocabulary(completed);`
)

// schemaDDL lists all statements executed on a fresh database.
var schemaDDL = []string{
	createVocabulary,
	idxVocabularyCompleted,
}

func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
