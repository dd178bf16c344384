package note

import (
	"time"

	"github.com/google/uuid"
)

// Category is the fixed bucket a note lives in.
type Category string

const (
	CategoryToBeDone            Category = "to_be_done"
	CategoryToBePracticed       Category = "to_be_practiced"
	CategoryToBeSearched        Category = "to_be_searched"
	CategoryToBeUsedAsReference Category = "to_be_used_as_reference"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryToBeDone,
	CategoryToBePracticed,
	CategoryToBeSearched,
	CategoryToBeUsedAsReference,
}

// ValidCategory reports whether raw is one of the four fixed categories.
func ValidCategory(raw string) bool {
	switch Category(raw) {
	case CategoryToBeDone, CategoryToBePracticed, CategoryToBeSearched, CategoryToBeUsedAsReference:
		return true
	}
	return false
}

type Note struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TaskID    uuid.UUID `db:"task_id" json:"task_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Category  Category  `db:"category" json:"category"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Item is the note shape embedded in an assembled tree.
type Item struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
}

// ByCategory is the fixed notes shape of an assembled task. All four keys are
// always present, even when empty.
type ByCategory struct {
	ToBeDone            []Item `json:"to_be_done"`
	ToBePracticed       []Item `json:"to_be_practiced"`
	ToBeSearched        []Item `json:"to_be_searched"`
	ToBeUsedAsReference []Item `json:"to_be_used_as_reference"`
}

// NewByCategory returns an empty grouping with all four buckets allocated so
// they serialize as arrays instead of null.
func NewByCategory() ByCategory {
	return ByCategory{
		ToBeDone:            []Item{},
		ToBePracticed:       []Item{},
		ToBeSearched:        []Item{},
		ToBeUsedAsReference: []Item{},
	}
}

// GroupByCategory buckets a user's notes for one task into the fixed shape,
// preserving input order.
func GroupByCategory(notes []*Note) ByCategory {
	grouped := NewByCategory()

	for _, n := range notes {
		item := Item{ID: n.ID, Content: n.Content}
		switch n.Category {
		case CategoryToBeDone:
			grouped.ToBeDone = append(grouped.ToBeDone, item)
		case CategoryToBePracticed:
			grouped.ToBePracticed = append(grouped.ToBePracticed, item)
		case CategoryToBeSearched:
			grouped.ToBeSearched = append(grouped.ToBeSearched, item)
		case CategoryToBeUsedAsReference:
			grouped.ToBeUsedAsReference = append(grouped.ToBeUsedAsReference, item)
		}
	}

	return grouped
}

// AddNoteRequest captures payload for creating a note
type AddNoteRequest struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

// EditNoteRequest captures payload for updating a note's content
type EditNoteRequest struct {
	Content string `json:"content"`
}
