package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNoAccess = errors.New("no access to this roadmap")

// AccessService resolves the effective access level of a user on a roadmap.
// Roles are always re-read from the store rather than trusted from the
// session token, so a stale token never widens authorization.
type AccessService struct {
	repo  *AccessRepo
	cache *Cache
}

func NewAccessService(repo *AccessRepo, cache *Cache) *AccessService {
	return &AccessService{repo: repo, cache: cache}
}

// Resolve returns exactly one of the six levels for (user, roadmap).
func (s *AccessService) Resolve(ctx context.Context, userID, roadmapID uuid.UUID) (Level, error) {
	if level, ok := s.cache.Get(ctx, roadmapID, userID); ok {
		return level, nil
	}

	creatorID, err := s.repo.GetRoadmapCreator(ctx, roadmapID)
	if err != nil {
		return LevelNone, err
	}

	roles, err := s.repo.GetUserRoles(ctx, userID)
	if err != nil {
		return LevelNone, err
	}

	var assigned string
	// Ownership and the admin role short-circuit the assignment lookup.
	if userID != creatorID && !HasRole(roles, RoleAdmin) {
		assigned, err = s.repo.GetAssignedType(ctx, roadmapID, userID)
		if err != nil {
			return LevelNone, err
		}
	}

	level := Derive(userID, creatorID, roles, assigned)
	s.cache.Set(ctx, roadmapID, userID, level)

	return level, nil
}

// ResolveForTask resolves access against the roadmap owning a task, and
// returns the roadmap id alongside the level.
func (s *AccessService) ResolveForTask(ctx context.Context, userID, taskID uuid.UUID) (Level, uuid.UUID, error) {
	roadmapID, err := s.repo.GetTaskRoadmap(ctx, taskID)
	if err != nil {
		return LevelNone, uuid.Nil, err
	}

	level, err := s.Resolve(ctx, userID, roadmapID)
	if err != nil {
		return LevelNone, uuid.Nil, err
	}

	return level, roadmapID, nil
}

// UserRoles returns the user's global roles as currently stored.
func (s *AccessService) UserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.repo.GetUserRoles(ctx, userID)
}

// RequireView fails with ErrNoAccess unless the user can see the roadmap.
func (s *AccessService) RequireView(ctx context.Context, userID, roadmapID uuid.UUID) (Level, error) {
	level, err := s.Resolve(ctx, userID, roadmapID)
	if err != nil {
		return LevelNone, err
	}

	if !level.CanView() {
		return LevelNone, fmt.Errorf("%w: %s", ErrNoAccess, roadmapID)
	}

	return level, nil
}

// InvalidateCached drops a cached (roadmap, user) entry after an assignment
// change on this instance. Cross-instance drops arrive through pubsub.
func (s *AccessService) InvalidateCached(ctx context.Context, roadmapID, userID uuid.UUID) {
	s.cache.Invalidate(ctx, roadmapID, userID)
}

// InvalidateAllCached flushes the whole cache.
func (s *AccessService) InvalidateAllCached(ctx context.Context) {
	s.cache.InvalidateAll(ctx)
}

// InvalidateCachedRoadmap drops every cached entry for a roadmap.
func (s *AccessService) InvalidateCachedRoadmap(ctx context.Context, roadmapID uuid.UUID) {
	s.cache.InvalidateRoadmap(ctx, roadmapID)
}
