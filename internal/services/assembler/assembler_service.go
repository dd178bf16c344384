package assembler

import (
	"context"

	"github.com/google/uuid"

	"github.com/praveen001/trailmap/internal/services/access"
	"github.com/praveen001/trailmap/internal/services/note"
	"github.com/praveen001/trailmap/internal/services/progress"
	"github.com/praveen001/trailmap/internal/services/roadmap"
)

// AssembledRoadmap is the unit returned to UI collaborators: the shared tree
// with the requester's overlay applied and their resolved access level.
type AssembledRoadmap struct {
	ID     uuid.UUID        `json:"id"`
	Title  string           `json:"title"`
	Phases []*roadmap.Phase `json:"phases"`
	Access access.Level     `json:"access"`
}

// AssemblerService joins the content tree with one user's overlay under the
// resolved access level. It never mutates state.
type AssemblerService struct {
	access   *access.AccessService
	roadmaps *roadmap.RoadmapRepo
	progress *progress.ProgressRepo
	notes    *note.NoteRepo
}

func NewAssemblerService(accessSvc *access.AccessService, roadmaps *roadmap.RoadmapRepo, progressRepo *progress.ProgressRepo, notes *note.NoteRepo) *AssemblerService {
	return &AssemblerService{
		access:   accessSvc,
		roadmaps: roadmaps,
		progress: progressRepo,
		notes:    notes,
	}
}

// Assemble resolves access first; a "none" level fails before the tree or
// overlay are touched.
func (s *AssemblerService) Assemble(ctx context.Context, roadmapID, userID uuid.UUID) (*AssembledRoadmap, error) {
	level, err := s.access.RequireView(ctx, userID, roadmapID)
	if err != nil {
		return nil, err
	}

	rm, err := s.roadmaps.GetByID(ctx, roadmapID)
	if err != nil {
		return nil, err
	}

	phases, err := s.roadmaps.GetTree(ctx, roadmapID)
	if err != nil {
		return nil, err
	}

	taskIDs := collectTaskIDs(phases)

	completed, err := s.progress.MapForTasks(ctx, taskIDs, userID)
	if err != nil {
		return nil, err
	}

	userNotes, err := s.notes.ListForTasks(ctx, taskIDs, userID)
	if err != nil {
		return nil, err
	}

	Overlay(phases, completed, groupNotesByTask(userNotes))

	return &AssembledRoadmap{
		ID:     rm.ID,
		Title:  rm.Title,
		Phases: phases,
		Access: level,
	}, nil
}

// Overlay writes one user's completion flags and grouped notes onto the
// tree. Every task ends up with all four note buckets present.
func Overlay(phases []*roadmap.Phase, completed map[uuid.UUID]bool, notesByTask map[uuid.UUID]note.ByCategory) {
	for _, phase := range phases {
		for _, week := range phase.Weeks {
			for _, day := range week.Days {
				for _, task := range day.Tasks {
					task.Completed = completed[task.ID]
					if grouped, ok := notesByTask[task.ID]; ok {
						task.Notes = grouped
					} else {
						task.Notes = note.NewByCategory()
					}
				}
			}
		}
	}
}

func collectTaskIDs(phases []*roadmap.Phase) []uuid.UUID {
	var ids []uuid.UUID
	for _, phase := range phases {
		for _, week := range phase.Weeks {
			for _, day := range week.Days {
				for _, task := range day.Tasks {
					ids = append(ids, task.ID)
				}
			}
		}
	}
	return ids
}

func groupNotesByTask(notes []*note.Note) map[uuid.UUID]note.ByCategory {
	perTask := make(map[uuid.UUID][]*note.Note)
	for _, n := range notes {
		perTask[n.TaskID] = append(perTask[n.TaskID], n)
	}

	grouped := make(map[uuid.UUID]note.ByCategory, len(perTask))
	for taskID, taskNotes := range perTask {
		grouped[taskID] = note.GroupByCategory(taskNotes)
	}

	return grouped
}
