// Vocabulary entity: one note or vocabulary item tracked by wordbook.

package types

import (
	"strings"

	"github.com/google/uuid"
)

// Vocabulary is an immutable value describing one note/vocabulary item.
// Mutations such as completion produce a new value with the same ID.
type Vocabulary struct {
	ID          string `json:"id"`                    // Opaque, assigned at creation, never reused.
	Title       string `json:"title,omitempty"`       // Optional text.
	Description string `json:"description,omitempty"` // Optional text.
	Type        string `json:"type,omitempty"`        // Part of speech or category (extended variant).
	Pronounce   string `json:"pronounce,omitempty"`   // Pronunciation hint (extended variant).
	Completed   bool   `json:"completed"`
}

// NewVocabulary creates an active item with a freshly generated ID.
func NewVocabulary(title, description string) Vocabulary {
	return NewFullVocabulary(NewID(), title, description, "", "", false)
}

// NewVocabularyWithID creates an item from the four core fields. Type and
// Pronounce are left empty.
func NewVocabularyWithID(id, title, description string, completed bool) Vocabulary {
	return NewFullVocabulary(id, title, description, "", "", completed)
}

// NewFullVocabulary creates an item with every field set explicitly.
func NewFullVocabulary(id, title, description, typ, pronounce string, completed bool) Vocabulary {
	return Vocabulary{
		ID:          id,
		Title:       title,
		Description: description,
		Type:        typ,
		Pronounce:   pronounce,
		Completed:   completed,
	}
}

// NewID generates a new UUID v7 for entity IDs.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// IsActive reports whether the item has not been completed.
func (v Vocabulary) IsActive() bool {
	return !v.Completed
}

// IsEmpty reports whether both title and description are blank.
func (v Vocabulary) IsEmpty() bool {
	return strings.TrimSpace(v.Title) == "" && strings.TrimSpace(v.Description) == ""
}

// AsCompleted returns a completed copy built from the four core fields.
// Type and Pronounce are not carried over.
func (v Vocabulary) AsCompleted() Vocabulary {
	return NewVocabularyWithID(v.ID, v.Title, v.Description, true)
}

// AsActive returns an active copy built from the four core fields.
// Type and Pronounce are not carried over.
func (v Vocabulary) AsActive() Vocabulary {
	return NewVocabularyWithID(v.ID, v.Title, v.Description, false)
}

func (v Vocabulary) String() string {
	return "Vocabulary " + v.Title
}
