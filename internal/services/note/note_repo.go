package note

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
	ErrNoteNotFound = errors.New("note not found")
	ErrTaskNotFound = errors.New("task not found")
)

type NoteRepo struct {
	db *sqlx.DB
}

func NewNoteRepo(db *sqlx.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

func (r *NoteRepo) Create(ctx context.Context, taskID, userID uuid.UUID, category Category, content string) (*Note, error) {
	query := `
        INSERT INTO notes (task_id, user_id, category, content)
        VALUES ($1, $2, $3, $4)
        RETURNING id, task_id, user_id, category, content, created_at, updated_at
    `

	var n Note
	err := r.db.GetContext(ctx, &n, query, taskID, userID, category, content)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
		}
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return &n, nil
}

func (r *NoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*Note, error) {
	query := `
        SELECT id, task_id, user_id, category, content, created_at, updated_at
        FROM notes
        WHERE id = $1
    `

	var n Note
	err := r.db.GetContext(ctx, &n, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &n, nil
}

// ListForTask returns one user's notes on a task in insertion order. Other
// users' notes are never visible through this query.
func (r *NoteRepo) ListForTask(ctx context.Context, taskID, userID uuid.UUID) ([]*Note, error) {
	query := `
        SELECT id, task_id, user_id, category, content, created_at, updated_at
        FROM notes
        WHERE task_id = $1 AND user_id = $2
        ORDER BY created_at, id
    `

	var notes []*Note
	err := r.db.SelectContext(ctx, &notes, query, taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

// ListForTasks returns one user's notes across a set of tasks, used by the
// assembler to overlay a whole tree in a single query.
func (r *NoteRepo) ListForTasks(ctx context.Context, taskIDs []uuid.UUID, userID uuid.UUID) ([]*Note, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}

	query := `
        SELECT id, task_id, user_id, category, content, created_at, updated_at
        FROM notes
        WHERE task_id = ANY($1) AND user_id = $2
        ORDER BY created_at, id
    `

	var notes []*Note
	err := r.db.SelectContext(ctx, &notes, query, pq.Array(taskIDs), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

func (r *NoteRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*Note, error) {
	query := `
        UPDATE notes
        SET content = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING id, task_id, user_id, category, content, created_at, updated_at
    `

	var n Note
	err := r.db.GetContext(ctx, &n, query, content, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return &n, nil
}

func (r *NoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
