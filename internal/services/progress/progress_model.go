package progress

import (
	"time"

	"github.com/google/uuid"
)

// Progress is one user's completion state for one task. At most one row per
// (task, user); a missing row reads as not completed.
type Progress struct {
	TaskID    uuid.UUID `db:"task_id" json:"task_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Completed bool      `db:"completed" json:"completed"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SetProgressRequest captures the progress toggle payload. Completed is a
// pointer so a missing or non-boolean field is rejected instead of
// defaulting to false.
type SetProgressRequest struct {
	Completed *bool `json:"completed"`
}
