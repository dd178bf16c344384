package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name     string
		userID   uuid.UUID
		roles    []string
		assigned string
		want     Level
	}{
		{
			name:   "creator resolves to owner",
			userID: owner,
			want:   LevelOwner,
		},
		{
			name:     "ownership wins over a narrower assignment",
			userID:   owner,
			assigned: "viewer",
			want:     LevelOwner,
		},
		{
			name:   "admin role wins without any assignment",
			userID: other,
			roles:  []string{"learner", "admin"},
			want:   LevelAdmin,
		},
		{
			name:     "admin role wins over a viewer assignment",
			userID:   other,
			roles:    []string{"admin"},
			assigned: "viewer",
			want:     LevelAdmin,
		},
		{
			name:     "learner assignment",
			userID:   other,
			roles:    []string{"learner"},
			assigned: "learner",
			want:     LevelLearner,
		},
		{
			name:     "commenter assignment",
			userID:   other,
			assigned: "commenter",
			want:     LevelCommenter,
		},
		{
			name:     "viewer assignment",
			userID:   other,
			assigned: "viewer",
			want:     LevelViewer,
		},
		{
			name:   "no relationship resolves to none",
			userID: other,
			roles:  []string{"learner", "planner"},
			want:   LevelNone,
		},
		{
			name:     "unknown assignment type resolves to none",
			userID:   other,
			assigned: "editor",
			want:     LevelNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.userID, owner, tt.roles, tt.assigned)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelCapabilities(t *testing.T) {
	tests := []struct {
		level          Level
		view           bool
		trackProgress  bool
		comment        bool
		manageAssigned bool
	}{
		{LevelOwner, true, true, true, true},
		{LevelAdmin, true, true, true, true},
		{LevelLearner, true, true, true, false},
		{LevelCommenter, true, false, true, false},
		{LevelViewer, true, false, false, false},
		{LevelNone, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.view, tt.level.CanView())
			assert.Equal(t, tt.trackProgress, tt.level.CanTrackProgress())
			assert.Equal(t, tt.comment, tt.level.CanComment())
			assert.Equal(t, tt.manageAssigned, tt.level.CanManageAssignments())
		})
	}
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole([]string{"learner", "planner"}, RolePlanner))
	assert.False(t, HasRole([]string{"learner", "planner"}, RoleAdmin))
	assert.False(t, HasRole(nil, RoleAdmin))
}
