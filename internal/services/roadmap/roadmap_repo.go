package roadmap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/praveen001/trailmap/internal/services/note"
)

var ErrRoadmapNotFound = errors.New("roadmap not found")

type RoadmapRepo struct {
	db *sqlx.DB
}

func NewRoadmapRepo(db *sqlx.DB) *RoadmapRepo {
	return &RoadmapRepo{db: db}
}

// CreateTree inserts a roadmap and its whole subtree in one transaction.
// Seed notes and pre-completed tasks in the spec become the creator's
// overlay rows. Any failure rolls the whole subtree back.
func (r *RoadmapRepo) CreateTree(ctx context.Context, creatorID uuid.UUID, spec *TreeSpec) (*Roadmap, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var roadmap Roadmap
	err = tx.GetContext(ctx, &roadmap, `
        INSERT INTO roadmaps (title, creator_id)
        VALUES ($1, $2)
        RETURNING id, title, creator_id, created_at, updated_at
    `, spec.Title, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create roadmap: %w", err)
	}

	for _, phaseSpec := range spec.Phases {
		var phaseID uuid.UUID
		err = tx.GetContext(ctx, &phaseID, `
            INSERT INTO phases (roadmap_id, title) VALUES ($1, $2) RETURNING id
        `, roadmap.ID, phaseSpec.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to create phase: %w", err)
		}

		for _, weekSpec := range phaseSpec.Weeks {
			var weekID uuid.UUID
			err = tx.GetContext(ctx, &weekID, `
                INSERT INTO weeks (phase_id, title) VALUES ($1, $2) RETURNING id
            `, phaseID, weekSpec.Title)
			if err != nil {
				return nil, fmt.Errorf("failed to create week: %w", err)
			}

			for _, daySpec := range weekSpec.Days {
				var dayID uuid.UUID
				err = tx.GetContext(ctx, &dayID, `
                    INSERT INTO days (week_id, title) VALUES ($1, $2) RETURNING id
                `, weekID, daySpec.Title)
				if err != nil {
					return nil, fmt.Errorf("failed to create day: %w", err)
				}

				for _, taskSpec := range daySpec.Tasks {
					var taskID uuid.UUID
					err = tx.GetContext(ctx, &taskID, `
                        INSERT INTO tasks (day_id, description) VALUES ($1, $2) RETURNING id
                    `, dayID, taskSpec.Description)
					if err != nil {
						return nil, fmt.Errorf("failed to create task: %w", err)
					}

					if taskSpec.Completed {
						_, err = tx.ExecContext(ctx, `
                            INSERT INTO task_progress (task_id, user_id, completed) VALUES ($1, $2, true)
                        `, taskID, creatorID)
						if err != nil {
							return nil, fmt.Errorf("failed to seed progress: %w", err)
						}
					}

					for _, category := range note.Categories {
						for _, content := range taskSpec.Notes[string(category)] {
							_, err = tx.ExecContext(ctx, `
                                INSERT INTO notes (task_id, user_id, category, content) VALUES ($1, $2, $3, $4)
                            `, taskID, creatorID, category, content)
							if err != nil {
								return nil, fmt.Errorf("failed to seed note: %w", err)
							}
						}
					}
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit roadmap tree: %w", err)
	}

	return &roadmap, nil
}

func (r *RoadmapRepo) GetByID(ctx context.Context, id uuid.UUID) (*Roadmap, error) {
	query := `
        SELECT id, title, creator_id, created_at, updated_at
        FROM roadmaps
        WHERE id = $1
    `

	var roadmap Roadmap
	err := r.db.GetContext(ctx, &roadmap, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoadmapNotFound
		}
		return nil, fmt.Errorf("failed to get roadmap: %w", err)
	}

	return &roadmap, nil
}

// ListVisible returns roadmaps the user created or was assigned to, in
// creation order.
func (r *RoadmapRepo) ListVisible(ctx context.Context, userID uuid.UUID) ([]*Roadmap, error) {
	query := `
        SELECT DISTINCT r.id, r.title, r.creator_id, r.created_at, r.updated_at
        FROM roadmaps r
        LEFT JOIN roadmap_assignments ra ON ra.roadmap_id = r.id AND ra.user_id = $1
        WHERE r.creator_id = $1 OR ra.user_id IS NOT NULL
        ORDER BY r.created_at, r.id
    `

	var roadmaps []*Roadmap
	err := r.db.SelectContext(ctx, &roadmaps, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roadmaps: %w", err)
	}

	return roadmaps, nil
}

// ListAll returns every roadmap, for admins.
func (r *RoadmapRepo) ListAll(ctx context.Context) ([]*Roadmap, error) {
	query := `
        SELECT id, title, creator_id, created_at, updated_at
        FROM roadmaps
        ORDER BY created_at, id
    `

	var roadmaps []*Roadmap
	err := r.db.SelectContext(ctx, &roadmaps, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roadmaps: %w", err)
	}

	return roadmaps, nil
}

// GetTree fetches the shared content tree of a roadmap in insertion order,
// one query per level, without any per-user overlay.
func (r *RoadmapRepo) GetTree(ctx context.Context, roadmapID uuid.UUID) ([]*Phase, error) {
	var phases []*Phase
	err := r.db.SelectContext(ctx, &phases, `
        SELECT id, roadmap_id, title, created_at
        FROM phases
        WHERE roadmap_id = $1
        ORDER BY created_at, id
    `, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases: %w", err)
	}

	phaseIDs := make([]uuid.UUID, 0, len(phases))
	phaseByID := make(map[uuid.UUID]*Phase, len(phases))
	for _, p := range phases {
		p.Weeks = []*Week{}
		phaseIDs = append(phaseIDs, p.ID)
		phaseByID[p.ID] = p
	}
	if len(phaseIDs) == 0 {
		return phases, nil
	}

	var weeks []*Week
	err = r.db.SelectContext(ctx, &weeks, `
        SELECT id, phase_id, title, created_at
        FROM weeks
        WHERE phase_id = ANY($1)
        ORDER BY created_at, id
    `, pq.Array(phaseIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}

	weekIDs := make([]uuid.UUID, 0, len(weeks))
	weekByID := make(map[uuid.UUID]*Week, len(weeks))
	for _, w := range weeks {
		w.Days = []*Day{}
		weekIDs = append(weekIDs, w.ID)
		weekByID[w.ID] = w
		phaseByID[w.PhaseID].Weeks = append(phaseByID[w.PhaseID].Weeks, w)
	}
	if len(weekIDs) == 0 {
		return phases, nil
	}

	var days []*Day
	err = r.db.SelectContext(ctx, &days, `
        SELECT id, week_id, title, created_at
        FROM days
        WHERE week_id = ANY($1)
        ORDER BY created_at, id
    `, pq.Array(weekIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}

	dayIDs := make([]uuid.UUID, 0, len(days))
	dayByID := make(map[uuid.UUID]*Day, len(days))
	for _, d := range days {
		d.Tasks = []*Task{}
		dayIDs = append(dayIDs, d.ID)
		dayByID[d.ID] = d
		weekByID[d.WeekID].Days = append(weekByID[d.WeekID].Days, d)
	}
	if len(dayIDs) == 0 {
		return phases, nil
	}

	var tasks []*Task
	err = r.db.SelectContext(ctx, &tasks, `
        SELECT id, day_id, description, created_at
        FROM tasks
        WHERE day_id = ANY($1)
        ORDER BY created_at, id
    `, pq.Array(dayIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	for _, t := range tasks {
		dayByID[t.DayID].Tasks = append(dayByID[t.DayID].Tasks, t)
	}

	return phases, nil
}

// Delete removes a roadmap permanently. The schema cascades the delete
// through phases, weeks, days, tasks, notes, progress and assignments.
func (r *RoadmapRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM roadmaps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete roadmap: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrRoadmapNotFound
	}

	return nil
}
