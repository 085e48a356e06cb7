// JSON record structure for vocabulary.jsonl.

package sqlite

import "github.com/mesh-intelligence/wordbook/pkg/types"

// vocabularyJSON represents one item in vocabulary.jsonl. Field names follow
// the table columns.
type vocabularyJSON struct {
	EntryID     string `json:"entryid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Pronounce   string `json:"pronounce"`
	Completed   bool   `json:"completed"`
}

func toVocabularyJSON(v types.Vocabulary) vocabularyJSON {
	return vocabularyJSON{
		EntryID:     v.ID,
		Title:       v.Title,
		Description: v.Description,
		Type:        v.Type,
		Pronounce:   v.Pronounce,
		Completed:   v.Completed,
	}
}
