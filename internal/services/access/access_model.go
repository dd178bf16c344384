package access

import "github.com/google/uuid"

// Level is the effective permission a user holds on a specific roadmap.
type Level string

const (
	LevelOwner     Level = "owner"
	LevelAdmin     Level = "admin"
	LevelLearner   Level = "learner"
	LevelCommenter Level = "commenter"
	LevelViewer    Level = "viewer"
	LevelNone      Level = "none"
)

// Global user roles carried in users.roles
const (
	RoleAdmin   = "admin"
	RoleLearner = "learner"
	RolePlanner = "planner"
)

// Derive computes the effective level from ownership, global roles and an
// optional assignment row. Ownership wins over the admin role, which wins
// over any assignment. assigned is the raw access_type, empty when no row
// exists.
func Derive(userID, creatorID uuid.UUID, roles []string, assigned string) Level {
	if userID == creatorID {
		return LevelOwner
	}

	for _, role := range roles {
		if role == RoleAdmin {
			return LevelAdmin
		}
	}

	switch assigned {
	case "learner":
		return LevelLearner
	case "viewer":
		return LevelViewer
	case "commenter":
		return LevelCommenter
	}

	return LevelNone
}

// CanView reports whether the level grants read access to the content tree.
func (l Level) CanView() bool {
	return l != LevelNone && l != ""
}

// CanTrackProgress reports whether the level may mark tasks complete.
func (l Level) CanTrackProgress() bool {
	switch l {
	case LevelOwner, LevelAdmin, LevelLearner:
		return true
	}
	return false
}

// CanComment reports whether the level may create and manage its own notes.
// Commenters may also delete their own notes; only viewers are read-only.
func (l Level) CanComment() bool {
	switch l {
	case LevelOwner, LevelAdmin, LevelLearner, LevelCommenter:
		return true
	}
	return false
}

// CanManageAssignments reports whether the level may grant or revoke access.
func (l Level) CanManageAssignments() bool {
	return l == LevelOwner || l == LevelAdmin
}

// HasRole reports whether the global role list contains role.
func HasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
