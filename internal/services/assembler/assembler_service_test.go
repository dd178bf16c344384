package assembler

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveen001/trailmap/internal/services/note"
	"github.com/praveen001/trailmap/internal/services/roadmap"
)

func treeWithTasks(taskIDs ...uuid.UUID) []*roadmap.Phase {
	tasks := make([]*roadmap.Task, len(taskIDs))
	for i, id := range taskIDs {
		tasks[i] = &roadmap.Task{ID: id, Description: "task"}
	}

	return []*roadmap.Phase{
		{
			Title: "Phase 1",
			Weeks: []*roadmap.Week{
				{
					Title: "Week 1",
					Days: []*roadmap.Day{
						{Title: "Day 1", Tasks: tasks},
					},
				},
			},
		},
	}
}

func TestOverlay(t *testing.T) {
	done := uuid.New()
	pending := uuid.New()

	phases := treeWithTasks(done, pending)

	noted := note.NewByCategory()
	noted.ToBeDone = append(noted.ToBeDone, note.Item{ID: uuid.New(), Content: "recap"})

	Overlay(phases,
		map[uuid.UUID]bool{done: true},
		map[uuid.UUID]note.ByCategory{done: noted},
	)

	tasks := phases[0].Weeks[0].Days[0].Tasks
	require.Len(t, tasks, 2)

	assert.True(t, tasks[0].Completed)
	require.Len(t, tasks[0].Notes.ToBeDone, 1)
	assert.Equal(t, "recap", tasks[0].Notes.ToBeDone[0].Content)

	// Tasks with no overlay rows default to incomplete with empty buckets
	assert.False(t, tasks[1].Completed)
	assert.NotNil(t, tasks[1].Notes.ToBeDone)
	assert.Empty(t, tasks[1].Notes.ToBeDone)
	assert.NotNil(t, tasks[1].Notes.ToBeUsedAsReference)
}

func TestOverlayEmptyTree(t *testing.T) {
	var phases []*roadmap.Phase
	assert.NotPanics(t, func() {
		Overlay(phases, nil, nil)
	})
}

func TestCollectTaskIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ids := collectTaskIDs(treeWithTasks(a, b))
	assert.Equal(t, []uuid.UUID{a, b}, ids)
}

func TestGroupNotesByTask(t *testing.T) {
	taskA, taskB := uuid.New(), uuid.New()

	grouped := groupNotesByTask([]*note.Note{
		{ID: uuid.New(), TaskID: taskA, Category: note.CategoryToBeDone, Content: "one"},
		{ID: uuid.New(), TaskID: taskB, Category: note.CategoryToBeSearched, Content: "two"},
		{ID: uuid.New(), TaskID: taskA, Category: note.CategoryToBeDone, Content: "three"},
	})

	require.Len(t, grouped, 2)
	assert.Len(t, grouped[taskA].ToBeDone, 2)
	assert.Len(t, grouped[taskB].ToBeSearched, 1)
}
