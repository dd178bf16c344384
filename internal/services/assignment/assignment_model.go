package assignment

import (
	"time"

	"github.com/google/uuid"
)

// Access types grantable through an assignment. Ownership and the admin role
// are never stored here; they dominate implicitly.
const (
	AccessLearner   = "learner"
	AccessViewer    = "viewer"
	AccessCommenter = "commenter"
)

// ValidAccessType reports whether raw is a grantable access type.
func ValidAccessType(raw string) bool {
	switch raw {
	case AccessLearner, AccessViewer, AccessCommenter:
		return true
	}
	return false
}

// Assignment grants a user a non-owner access level on a roadmap.
type Assignment struct {
	RoadmapID  uuid.UUID `db:"roadmap_id" json:"roadmap_id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	AccessType string    `db:"access_type" json:"access_type"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`

	// Joined from users for listings
	UserName  string `db:"user_name" json:"user_name"`
	UserEmail string `db:"user_email" json:"user_email"`
}

// AssignRequest captures payload for granting access
type AssignRequest struct {
	UserID     uuid.UUID `json:"user_id"`
	AccessType string    `json:"access_type"`
}

// UnassignRequest captures payload for revoking access
type UnassignRequest struct {
	UserID uuid.UUID `json:"user_id"`
}
