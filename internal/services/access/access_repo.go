package access

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrRoadmapNotFound = errors.New("roadmap not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrUserNotFound    = errors.New("user not found")
)

// AccessRepo reads the three inputs of access resolution: roadmap ownership,
// global roles and assignment rows.
type AccessRepo struct {
	db *sqlx.DB
}

func NewAccessRepo(db *sqlx.DB) *AccessRepo {
	return &AccessRepo{db: db}
}

// GetRoadmapCreator returns the creator of a roadmap.
func (r *AccessRepo) GetRoadmapCreator(ctx context.Context, roadmapID uuid.UUID) (uuid.UUID, error) {
	query := `SELECT creator_id FROM roadmaps WHERE id = $1`

	var creatorID uuid.UUID
	err := r.db.GetContext(ctx, &creatorID, query, roadmapID)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, ErrRoadmapNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get roadmap creator: %w", err)
	}

	return creatorID, nil
}

// GetUserRoles returns the global role list for a user.
func (r *AccessRepo) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `SELECT roles FROM users WHERE id = $1`

	var roles pq.StringArray
	err := r.db.GetContext(ctx, &roles, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}

	return roles, nil
}

// GetAssignedType returns the access_type of the assignment row for
// (roadmap, user), or an empty string when none exists.
func (r *AccessRepo) GetAssignedType(ctx context.Context, roadmapID, userID uuid.UUID) (string, error) {
	query := `SELECT access_type FROM roadmap_assignments WHERE roadmap_id = $1 AND user_id = $2`

	var accessType string
	err := r.db.GetContext(ctx, &accessType, query, roadmapID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get assignment: %w", err)
	}

	return accessType, nil
}

// GetTaskRoadmap walks a task up the content tree to its roadmap.
func (r *AccessRepo) GetTaskRoadmap(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error) {
	query := `
        SELECT p.roadmap_id
        FROM tasks t
        JOIN days d ON t.day_id = d.id
        JOIN weeks w ON d.week_id = w.id
        JOIN phases p ON w.phase_id = p.id
        WHERE t.id = $1
    `

	var roadmapID uuid.UUID
	err := r.db.GetContext(ctx, &roadmapID, query, taskID)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, ErrTaskNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get task roadmap: %w", err)
	}

	return roadmapID, nil
}
