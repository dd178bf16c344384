package roadmap

import (
	"time"

	"github.com/google/uuid"

	"github.com/praveen001/trailmap/internal/services/note"
)

// Roadmap is the root of a content tree, owned by its creator.
type Roadmap struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	CreatorID uuid.UUID `db:"creator_id" json:"creator_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Phase, Week, Day and Task form the shared content tree. The nested slices
// are stitched in by the repo; per-task Completed and Notes stay zero until
// the assembler overlays them for a specific user.
type Phase struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RoadmapID uuid.UUID `db:"roadmap_id" json:"roadmap_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	Weeks     []*Week   `db:"-" json:"weeks"`
}

type Week struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PhaseID   uuid.UUID `db:"phase_id" json:"phase_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	Days      []*Day    `db:"-" json:"days"`
}

type Day struct {
	ID        uuid.UUID `db:"id" json:"id"`
	WeekID    uuid.UUID `db:"week_id" json:"week_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	Tasks     []*Task   `db:"-" json:"tasks"`
}

type Task struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	DayID       uuid.UUID       `db:"day_id" json:"day_id"`
	Description string          `db:"description" json:"description"`
	CreatedAt   time.Time       `db:"created_at" json:"-"`
	Completed   bool            `db:"-" json:"completed"`
	Notes       note.ByCategory `db:"-" json:"notes"`
}

// TreeSpec is the payload for creating a whole roadmap at once, shared by the
// JSON body and file-upload entry points.
type TreeSpec struct {
	Title  string       `json:"title"`
	Phases []*PhaseSpec `json:"phases"`
}

type PhaseSpec struct {
	Title string      `json:"title"`
	Weeks []*WeekSpec `json:"weeks"`
}

type WeekSpec struct {
	Title string     `json:"title"`
	Days  []*DaySpec `json:"days"`
}

type DaySpec struct {
	Title string      `json:"title"`
	Tasks []*TaskSpec `json:"tasks"`
}

// TaskSpec carries an optional completed flag and seed notes. Both belong to
// the creator once imported; completion and notes are per-user afterwards.
type TaskSpec struct {
	Description string              `json:"description"`
	Completed   bool                `json:"completed"`
	Notes       map[string][]string `json:"notes,omitempty"`
}
