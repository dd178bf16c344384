package roadmap

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praveen001/trailmap/internal/services/access"
)

// RoadmapService owns the shared content tree.
type RoadmapService struct {
	repo   *RoadmapRepo
	access *access.AccessService
}

func NewRoadmapService(repo *RoadmapRepo, accessSvc *access.AccessService) *RoadmapService {
	return &RoadmapService{repo: repo, access: accessSvc}
}

// CreateTree validates the spec and inserts the whole subtree atomically.
func (s *RoadmapService) CreateTree(ctx context.Context, creatorID uuid.UUID, spec *TreeSpec) (*Roadmap, error) {
	if err := ValidateTreeSpec(spec); err != nil {
		return nil, err
	}

	return s.repo.CreateTree(ctx, creatorID, spec)
}

func (s *RoadmapService) GetByID(ctx context.Context, id uuid.UUID) (*Roadmap, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the roadmaps visible to the user; admins see everything.
func (s *RoadmapService) List(ctx context.Context, userID uuid.UUID, roles []string) ([]*Roadmap, error) {
	if access.HasRole(roles, access.RoleAdmin) {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListVisible(ctx, userID)
}

// GetTree returns the raw content tree without a per-user overlay.
func (s *RoadmapService) GetTree(ctx context.Context, roadmapID uuid.UUID) ([]*Phase, error) {
	return s.repo.GetTree(ctx, roadmapID)
}

// Delete permanently removes a roadmap and everything under it. Only the
// owner or an admin may delete.
func (s *RoadmapService) Delete(ctx context.Context, roadmapID, userID uuid.UUID) error {
	level, err := s.access.Resolve(ctx, userID, roadmapID)
	if err != nil {
		return err
	}
	if !level.CanManageAssignments() {
		return fmt.Errorf("%w: level %s cannot delete roadmap", access.ErrNoAccess, level)
	}

	if err := s.repo.Delete(ctx, roadmapID); err != nil {
		return err
	}

	s.access.InvalidateCachedRoadmap(ctx, roadmapID)
	return nil
}
