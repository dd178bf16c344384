package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() *TreeSpec {
	return &TreeSpec{
		Title: "Backend Path",
		Phases: []*PhaseSpec{
			{
				Title: "Foundations",
				Weeks: []*WeekSpec{
					{
						Title: "Week 1",
						Days: []*DaySpec{
							{
								Title: "Day 1",
								Tasks: []*TaskSpec{
									{Description: "Read about TCP"},
									{Description: "Set up a database", Completed: true},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestValidateTreeSpec(t *testing.T) {
	t.Run("accepts a well formed tree", func(t *testing.T) {
		require.NoError(t, ValidateTreeSpec(validSpec()))
	})

	t.Run("accepts empty child arrays", func(t *testing.T) {
		spec := validSpec()
		spec.Phases[0].Weeks[0].Days[0].Tasks = []*TaskSpec{}
		require.NoError(t, ValidateTreeSpec(spec))
	})

	t.Run("accepts seed notes in known categories", func(t *testing.T) {
		spec := validSpec()
		spec.Phases[0].Weeks[0].Days[0].Tasks[0].Notes = map[string][]string{
			"to_be_done":     {"revise"},
			"to_be_searched": {"congestion control"},
		}
		require.NoError(t, ValidateTreeSpec(spec))
	})

	tests := []struct {
		name    string
		mutate  func(*TreeSpec)
		wantMsg string
	}{
		{
			name:    "missing title",
			mutate:  func(s *TreeSpec) { s.Title = "  " },
			wantMsg: "title is required",
		},
		{
			name:    "nil phases array",
			mutate:  func(s *TreeSpec) { s.Phases = nil },
			wantMsg: "phases array is required",
		},
		{
			name:    "phase without title",
			mutate:  func(s *TreeSpec) { s.Phases[0].Title = "" },
			wantMsg: "phases[0].title is required",
		},
		{
			name:    "week without days",
			mutate:  func(s *TreeSpec) { s.Phases[0].Weeks[0].Days = nil },
			wantMsg: "phases[0].weeks[0].days array is required",
		},
		{
			name:    "null day entry",
			mutate:  func(s *TreeSpec) { s.Phases[0].Weeks[0].Days[0] = nil },
			wantMsg: "phases[0].weeks[0].days[0] is not an object",
		},
		{
			name: "last task malformed",
			mutate: func(s *TreeSpec) {
				s.Phases[0].Weeks[0].Days[0].Tasks[1].Description = ""
			},
			wantMsg: "phases[0].weeks[0].days[0].tasks[1].description is required",
		},
		{
			name: "seed note with unknown category",
			mutate: func(s *TreeSpec) {
				s.Phases[0].Weeks[0].Days[0].Tasks[0].Notes = map[string][]string{
					"random_thoughts": {"nope"},
				}
			},
			wantMsg: `unknown category "random_thoughts"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec()
			tt.mutate(spec)

			err := ValidateTreeSpec(spec)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTreeSpec)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
