package assignment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/praveen001/trailmap/internal/services/access"
)

var ErrInvalidAccessType = errors.New("invalid access type")

// AssignmentService manages who may access a roadmap and at what level.
// Every operation is gated on the granter resolving to owner or admin.
type AssignmentService struct {
	repo   *AssignmentRepo
	access *access.AccessService
}

func NewAssignmentService(repo *AssignmentRepo, accessSvc *access.AccessService) *AssignmentService {
	return &AssignmentService{repo: repo, access: accessSvc}
}

// Assign grants targetUserID an access type on a roadmap. A duplicate grant
// is rejected; changing a level requires remove-then-re-add.
func (s *AssignmentService) Assign(ctx context.Context, roadmapID, granterID, targetUserID uuid.UUID, accessType string) (*Assignment, error) {
	if !ValidAccessType(accessType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccessType, accessType)
	}

	if err := s.requireManager(ctx, roadmapID, granterID); err != nil {
		return nil, err
	}

	a, err := s.repo.Create(ctx, roadmapID, targetUserID, accessType)
	if err != nil {
		return nil, err
	}

	s.access.InvalidateCached(ctx, roadmapID, targetUserID)
	return a, nil
}

// Unassign revokes a user's access; reports not-found when no grant existed.
func (s *AssignmentService) Unassign(ctx context.Context, roadmapID, granterID, targetUserID uuid.UUID) error {
	if err := s.requireManager(ctx, roadmapID, granterID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, roadmapID, targetUserID); err != nil {
		return err
	}

	s.access.InvalidateCached(ctx, roadmapID, targetUserID)
	return nil
}

// List returns a roadmap's assignments for its owner or an admin.
func (s *AssignmentService) List(ctx context.Context, roadmapID, requesterID uuid.UUID) ([]*Assignment, error) {
	if err := s.requireManager(ctx, roadmapID, requesterID); err != nil {
		return nil, err
	}

	return s.repo.List(ctx, roadmapID)
}

func (s *AssignmentService) requireManager(ctx context.Context, roadmapID, userID uuid.UUID) error {
	level, err := s.access.Resolve(ctx, userID, roadmapID)
	if err != nil {
		return err
	}
	if !level.CanManageAssignments() {
		return fmt.Errorf("%w: level %s cannot manage assignments", access.ErrNoAccess, level)
	}
	return nil
}
