package progress

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praveen001/trailmap/internal/services/access"
)

// ProgressService owns the per-user completion overlay.
type ProgressService struct {
	repo   *ProgressRepo
	access *access.AccessService
}

func NewProgressService(repo *ProgressRepo, accessSvc *access.AccessService) *ProgressService {
	return &ProgressService{repo: repo, access: accessSvc}
}

// Set upserts the requester's completion flag on a task. Viewers and
// commenters are rejected; owners, admins and learners may track progress.
func (s *ProgressService) Set(ctx context.Context, taskID, userID uuid.UUID, completed bool) (uuid.UUID, error) {
	level, roadmapID, err := s.access.ResolveForTask(ctx, userID, taskID)
	if err != nil {
		return uuid.Nil, err
	}
	if !level.CanTrackProgress() {
		return uuid.Nil, fmt.Errorf("%w: level %s cannot track progress", access.ErrNoAccess, level)
	}

	if err := s.repo.Upsert(ctx, taskID, userID, completed); err != nil {
		return uuid.Nil, err
	}

	return roadmapID, nil
}

// Get returns the requester's completion flag for a task, false when no row
// exists.
func (s *ProgressService) Get(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	level, _, err := s.access.ResolveForTask(ctx, userID, taskID)
	if err != nil {
		return false, err
	}
	if !level.CanView() {
		return false, fmt.Errorf("%w: task %s", access.ErrNoAccess, taskID)
	}

	return s.repo.Get(ctx, taskID, userID)
}
