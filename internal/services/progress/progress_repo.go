package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrTaskNotFound = errors.New("task not found")

type ProgressRepo struct {
	db *sqlx.DB
}

func NewProgressRepo(db *sqlx.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// Upsert writes the completion flag for (task, user). Concurrent writers
// converge on a single row with the last committed value.
func (r *ProgressRepo) Upsert(ctx context.Context, taskID, userID uuid.UUID, completed bool) error {
	query := `
        INSERT INTO task_progress (task_id, user_id, completed)
        VALUES ($1, $2, $3)
        ON CONFLICT (task_id, user_id) DO UPDATE SET completed = EXCLUDED.completed, updated_at = NOW()
    `

	_, err := r.db.ExecContext(ctx, query, taskID, userID, completed)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
		}
		return fmt.Errorf("failed to upsert progress: %w", err)
	}

	return nil
}

// Get returns the completion flag for (task, user); absence means false.
func (r *ProgressRepo) Get(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	query := `SELECT completed FROM task_progress WHERE task_id = $1 AND user_id = $2`

	var completed bool
	err := r.db.GetContext(ctx, &completed, query, taskID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to get progress: %w", err)
	}

	return completed, nil
}

// MapForTasks returns the user's completion flags across a set of tasks.
// Tasks without a row are simply absent from the map.
func (r *ProgressRepo) MapForTasks(ctx context.Context, taskIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	completed := make(map[uuid.UUID]bool)
	if len(taskIDs) == 0 {
		return completed, nil
	}

	query := `
        SELECT task_id, user_id, completed, updated_at
        FROM task_progress
        WHERE task_id = ANY($1) AND user_id = $2
    `

	var rows []*Progress
	err := r.db.SelectContext(ctx, &rows, query, pq.Array(taskIDs), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}

	for _, row := range rows {
		completed[row.TaskID] = row.Completed
	}

	return completed, nil
}
