package roadmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/praveen001/trailmap/internal/services/note"
)

var ErrInvalidTreeSpec = errors.New("invalid roadmap spec")

// ValidateTreeSpec runs the recursive structural check over a tree spec
// before anything is written. Both the JSON-body and file-upload entry points
// go through this single validator. The error names the path of the first
// offending node.
func ValidateTreeSpec(spec *TreeSpec) error {
	if spec == nil {
		return fmt.Errorf("%w: missing body", ErrInvalidTreeSpec)
	}
	if strings.TrimSpace(spec.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTreeSpec)
	}
	if spec.Phases == nil {
		return fmt.Errorf("%w: phases array is required", ErrInvalidTreeSpec)
	}

	for i, phase := range spec.Phases {
		if err := validatePhase(phase, fmt.Sprintf("phases[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

func validatePhase(phase *PhaseSpec, path string) error {
	if phase == nil {
		return fmt.Errorf("%w: %s is not an object", ErrInvalidTreeSpec, path)
	}
	if strings.TrimSpace(phase.Title) == "" {
		return fmt.Errorf("%w: %s.title is required", ErrInvalidTreeSpec, path)
	}
	if phase.Weeks == nil {
		return fmt.Errorf("%w: %s.weeks array is required", ErrInvalidTreeSpec, path)
	}

	for i, week := range phase.Weeks {
		if err := validateWeek(week, fmt.Sprintf("%s.weeks[%d]", path, i)); err != nil {
			return err
		}
	}

	return nil
}

func validateWeek(week *WeekSpec, path string) error {
	if week == nil {
		return fmt.Errorf("%w: %s is not an object", ErrInvalidTreeSpec, path)
	}
	if strings.TrimSpace(week.Title) == "" {
		return fmt.Errorf("%w: %s.title is required", ErrInvalidTreeSpec, path)
	}
	if week.Days == nil {
		return fmt.Errorf("%w: %s.days array is required", ErrInvalidTreeSpec, path)
	}

	for i, day := range week.Days {
		if err := validateDay(day, fmt.Sprintf("%s.days[%d]", path, i)); err != nil {
			return err
		}
	}

	return nil
}

func validateDay(day *DaySpec, path string) error {
	if day == nil {
		return fmt.Errorf("%w: %s is not an object", ErrInvalidTreeSpec, path)
	}
	if strings.TrimSpace(day.Title) == "" {
		return fmt.Errorf("%w: %s.title is required", ErrInvalidTreeSpec, path)
	}
	if day.Tasks == nil {
		return fmt.Errorf("%w: %s.tasks array is required", ErrInvalidTreeSpec, path)
	}

	for i, task := range day.Tasks {
		if err := validateTask(task, fmt.Sprintf("%s.tasks[%d]", path, i)); err != nil {
			return err
		}
	}

	return nil
}

func validateTask(task *TaskSpec, path string) error {
	if task == nil {
		return fmt.Errorf("%w: %s is not an object", ErrInvalidTreeSpec, path)
	}
	if strings.TrimSpace(task.Description) == "" {
		return fmt.Errorf("%w: %s.description is required", ErrInvalidTreeSpec, path)
	}

	for category := range task.Notes {
		if !note.ValidCategory(category) {
			return fmt.Errorf("%w: %s.notes has unknown category %q", ErrInvalidTreeSpec, path, category)
		}
	}

	return nil
}
