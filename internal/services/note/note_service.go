package note

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/praveen001/trailmap/internal/services/access"
)

var (
	ErrInvalidCategory = errors.New("invalid note category")
	ErrEmptyContent    = errors.New("content must be a non-empty string")
	ErrNotNoteOwner    = errors.New("no access to this note")
)

// noteStore is the slice of the repo the service uses.
type noteStore interface {
	Create(ctx context.Context, taskID, userID uuid.UUID, category Category, content string) (*Note, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Note, error)
	ListForTask(ctx context.Context, taskID, userID uuid.UUID) ([]*Note, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// accessResolver resolves effective levels and global roles.
type accessResolver interface {
	ResolveForTask(ctx context.Context, userID, taskID uuid.UUID) (access.Level, uuid.UUID, error)
	UserRoles(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// NoteService owns the per-user notes overlay. Every mutation is gated
// through the access resolver; edit and delete additionally require note
// ownership (or the admin role).
type NoteService struct {
	repo   noteStore
	access accessResolver
}

func NewNoteService(repo *NoteRepo, accessSvc *access.AccessService) *NoteService {
	return &NoteService{repo: repo, access: accessSvc}
}

// Add creates a note for the requester on a task. Requires a level that may
// comment (owner, admin, learner or commenter).
func (s *NoteService) Add(ctx context.Context, taskID, userID uuid.UUID, req *AddNoteRequest) (*Note, error) {
	if !ValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, req.Category)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	level, _, err := s.access.ResolveForTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if !level.CanComment() {
		return nil, fmt.Errorf("%w: level %s cannot add notes", access.ErrNoAccess, level)
	}

	return s.repo.Create(ctx, taskID, userID, Category(req.Category), req.Content)
}

// ListForTask returns the requester's own notes grouped into the fixed
// four-category shape.
func (s *NoteService) ListForTask(ctx context.Context, taskID, userID uuid.UUID) (ByCategory, error) {
	level, _, err := s.access.ResolveForTask(ctx, userID, taskID)
	if err != nil {
		return NewByCategory(), err
	}
	if !level.CanView() {
		return NewByCategory(), fmt.Errorf("%w: task %s", access.ErrNoAccess, taskID)
	}

	notes, err := s.repo.ListForTask(ctx, taskID, userID)
	if err != nil {
		return NewByCategory(), err
	}

	return GroupByCategory(notes), nil
}

// Edit updates a note's content after verifying ownership.
func (s *NoteService) Edit(ctx context.Context, noteID, userID uuid.UUID, req *EditNoteRequest) (*Note, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	if _, err := s.authorize(ctx, noteID, userID); err != nil {
		return nil, err
	}

	return s.repo.UpdateContent(ctx, noteID, req.Content)
}

// Delete removes a note after verifying ownership, and returns the removed
// note. Note owners keep delete rights as long as their level still permits
// commenting; admins may always delete.
func (s *NoteService) Delete(ctx context.Context, noteID, userID uuid.UUID) (*Note, error) {
	n, err := s.authorize(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, noteID); err != nil {
		return nil, err
	}

	return n, nil
}

// authorize checks that the requester owns the note and still holds a
// commenting level on the owning roadmap, or carries the global admin role.
// The role is checked directly because a roadmap creator resolves to owner
// even when they also hold admin.
func (s *NoteService) authorize(ctx context.Context, noteID, userID uuid.UUID) (*Note, error) {
	n, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	level, _, err := s.access.ResolveForTask(ctx, userID, n.TaskID)
	if err != nil {
		return nil, err
	}

	if n.UserID == userID {
		if !level.CanComment() {
			return nil, fmt.Errorf("%w: level %s cannot modify notes", access.ErrNoAccess, level)
		}
		return n, nil
	}

	roles, err := s.access.UserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if access.HasRole(roles, access.RoleAdmin) {
		return n, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotNoteOwner, noteID)
}
