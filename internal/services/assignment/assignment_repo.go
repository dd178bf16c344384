package assignment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrDuplicateAssignment = errors.New("assignment already exists")
	ErrUserNotFound        = errors.New("user not found")
)

type AssignmentRepo struct {
	db *sqlx.DB
}

func NewAssignmentRepo(db *sqlx.DB) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

// Create inserts an assignment row. A duplicate (roadmap, user) pair is
// rejected by the primary key, never overwritten.
func (r *AssignmentRepo) Create(ctx context.Context, roadmapID, userID uuid.UUID, accessType string) (*Assignment, error) {
	query := `
        INSERT INTO roadmap_assignments (roadmap_id, user_id, access_type)
        VALUES ($1, $2, $3)
        RETURNING roadmap_id, user_id, access_type, created_at
    `

	var a Assignment
	err := r.db.GetContext(ctx, &a, query, roadmapID, userID, accessType)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return nil, fmt.Errorf("%w: user %s", ErrDuplicateAssignment, userID)
			case "foreign_key_violation":
				return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
			}
		}
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	return &a, nil
}

// Delete removes the assignment for (roadmap, user).
func (r *AssignmentRepo) Delete(ctx context.Context, roadmapID, userID uuid.UUID) error {
	query := `DELETE FROM roadmap_assignments WHERE roadmap_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, roadmapID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

// List returns a roadmap's assignments with assignee details, oldest first.
func (r *AssignmentRepo) List(ctx context.Context, roadmapID uuid.UUID) ([]*Assignment, error) {
	query := `
        SELECT ra.roadmap_id, ra.user_id, ra.access_type, ra.created_at,
               u.name AS user_name, u.email AS user_email
        FROM roadmap_assignments ra
        JOIN users u ON u.id = ra.user_id
        WHERE ra.roadmap_id = $1
        ORDER BY ra.created_at, ra.user_id
    `

	var assignments []*Assignment
	err := r.db.SelectContext(ctx, &assignments, query, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, nil
}
