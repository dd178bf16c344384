package activity

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded in the activity log
const (
	ActionRoadmapCreated    = "roadmap_created"
	ActionRoadmapDeleted    = "roadmap_deleted"
	ActionProgressSet       = "progress_set"
	ActionNoteAdded         = "note_added"
	ActionNoteEdited        = "note_edited"
	ActionNoteDeleted       = "note_deleted"
	ActionAssignmentGranted = "assignment_granted"
	ActionAssignmentRevoked = "assignment_revoked"
)

// Event is one recorded mutation against a roadmap.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	RoadmapID uuid.UUID `json:"roadmap_id"`
	UserID    uuid.UUID `json:"user_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
}
