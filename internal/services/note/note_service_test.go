package note

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveen001/trailmap/internal/services/access"
)

type fakeNoteStore struct {
	notes   map[uuid.UUID]*Note
	deleted []uuid.UUID
}

func newFakeNoteStore(notes ...*Note) *fakeNoteStore {
	s := &fakeNoteStore{notes: map[uuid.UUID]*Note{}}
	for _, n := range notes {
		s.notes[n.ID] = n
	}
	return s
}

func (s *fakeNoteStore) Create(_ context.Context, taskID, userID uuid.UUID, category Category, content string) (*Note, error) {
	n := &Note{ID: uuid.New(), TaskID: taskID, UserID: userID, Category: category, Content: content}
	s.notes[n.ID] = n
	return n, nil
}

func (s *fakeNoteStore) GetByID(_ context.Context, id uuid.UUID) (*Note, error) {
	n, ok := s.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	return n, nil
}

func (s *fakeNoteStore) ListForTask(_ context.Context, taskID, userID uuid.UUID) ([]*Note, error) {
	var out []*Note
	for _, n := range s.notes {
		if n.TaskID == taskID && n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *fakeNoteStore) UpdateContent(_ context.Context, id uuid.UUID, content string) (*Note, error) {
	n, ok := s.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	n.Content = content
	return n, nil
}

func (s *fakeNoteStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.notes[id]; !ok {
		return ErrNoteNotFound
	}
	delete(s.notes, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeResolver struct {
	level     access.Level
	roadmapID uuid.UUID
	roles     []string
}

func (r *fakeResolver) ResolveForTask(context.Context, uuid.UUID, uuid.UUID) (access.Level, uuid.UUID, error) {
	return r.level, r.roadmapID, nil
}

func (r *fakeResolver) UserRoles(context.Context, uuid.UUID) ([]string, error) {
	return r.roles, nil
}

func TestAddValidation(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	tests := []struct {
		name    string
		level   access.Level
		req     AddNoteRequest
		wantErr error
	}{
		{
			name:    "unknown category rejected",
			level:   access.LevelLearner,
			req:     AddNoteRequest{Category: "to_be_forgotten", Content: "x"},
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "blank content rejected",
			level:   access.LevelLearner,
			req:     AddNoteRequest{Category: string(CategoryToBeDone), Content: "   "},
			wantErr: ErrEmptyContent,
		},
		{
			name:    "viewer cannot add",
			level:   access.LevelViewer,
			req:     AddNoteRequest{Category: string(CategoryToBeDone), Content: "x"},
			wantErr: access.ErrNoAccess,
		},
		{
			name:  "commenter adds",
			level: access.LevelCommenter,
			req:   AddNoteRequest{Category: string(CategoryToBeDone), Content: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &NoteService{
				repo:   newFakeNoteStore(),
				access: &fakeResolver{level: tt.level},
			}

			created, err := svc.Add(context.Background(), taskID, userID, &tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, created.UserID)
			assert.Equal(t, Category(tt.req.Category), created.Category)
		})
	}
}

func TestEditAndDeleteOwnership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	taskID := uuid.New()

	tests := []struct {
		name      string
		requester uuid.UUID
		level     access.Level
		roles     []string
		wantErr   error
	}{
		{
			name:      "owner with commenter level",
			requester: owner,
			level:     access.LevelCommenter,
		},
		{
			name:      "owner downgraded to viewer loses edit",
			requester: owner,
			level:     access.LevelViewer,
			wantErr:   access.ErrNoAccess,
		},
		{
			name:      "learner cannot touch another user's note",
			requester: stranger,
			level:     access.LevelLearner,
			roles:     []string{access.RoleLearner},
			wantErr:   ErrNotNoteOwner,
		},
		{
			name:      "roadmap owner without admin role cannot touch another user's note",
			requester: stranger,
			level:     access.LevelOwner,
			roles:     []string{access.RolePlanner},
			wantErr:   ErrNotNoteOwner,
		},
		{
			name:      "admin role overrides ownership",
			requester: stranger,
			level:     access.LevelAdmin,
			roles:     []string{access.RoleAdmin},
		},
		{
			// A global admin who also created the roadmap resolves to the
			// owner level; the role still grants the override.
			name:      "admin who is also roadmap owner overrides ownership",
			requester: stranger,
			level:     access.LevelOwner,
			roles:     []string{access.RoleAdmin, access.RolePlanner},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Note{ID: uuid.New(), TaskID: taskID, UserID: owner, Category: CategoryToBeDone, Content: "before"}
			svc := &NoteService{
				repo:   newFakeNoteStore(n),
				access: &fakeResolver{level: tt.level, roles: tt.roles},
			}

			updated, err := svc.Edit(context.Background(), n.ID, tt.requester, &EditNoteRequest{Content: "after"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "after", updated.Content)
			}

			_, err = svc.Delete(context.Background(), n.ID, tt.requester)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDeleteReturnsRemovedNote(t *testing.T) {
	owner := uuid.New()
	n := &Note{ID: uuid.New(), TaskID: uuid.New(), UserID: owner, Category: CategoryToBePracticed, Content: "keep for the log"}
	store := newFakeNoteStore(n)
	svc := &NoteService{
		repo:   store,
		access: &fakeResolver{level: access.LevelLearner},
	}

	deleted, err := svc.Delete(context.Background(), n.ID, owner)
	require.NoError(t, err)

	// The caller records the deletion in the activity log, so the removed
	// note must come back with its task and category intact.
	require.NotNil(t, deleted)
	assert.Equal(t, n.TaskID, deleted.TaskID)
	assert.Equal(t, CategoryToBePracticed, deleted.Category)
	assert.Equal(t, []uuid.UUID{n.ID}, store.deleted)

	_, err = svc.Delete(context.Background(), n.ID, owner)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}
