package workout

import (
	"context"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// cloneTemplate copies a routine day's set group tree into a session. The
// clone preserves structure, exercise references, load targets, and rest
// times; completion state never carries over. The new records share nothing
// with the template, so later edits to either tree are independent.
func (s *Service) cloneTemplate(ctx context.Context, userID int, day models.RoutineDay, sessionID uuid.UUID) error {
	groups, err := s.store.ListSetGroups(ctx, models.DayScope(day.ID))
	if err != nil {
		return err
	}

	now := s.now()
	for groupOrder, tmpl := range groups {
		group := models.SetGroup{
			ID:        uuid.New(),
			UserID:    userID,
			SessionID: &sessionID,
			Type:      tmpl.Type,
			Order:     groupOrder,
			Comment:   cloneComment(tmpl.Comment),
			UpdatedAt: now,
		}
		if err := s.store.CreateSetGroup(ctx, group); err != nil {
			return err
		}

		sets, err := s.store.ListSets(ctx, tmpl.ID)
		if err != nil {
			return err
		}
		for setOrder, setTmpl := range sets {
			set := models.Set{
				ID:               uuid.New(),
				UserID:           userID,
				SetGroupID:       group.ID,
				ExerciseID:       setTmpl.ExerciseID,
				Type:             setTmpl.Type,
				Order:            setOrder,
				Reps:             setTmpl.Reps,
				RepetitionUnitID: setTmpl.RepetitionUnitID,
				Weight:           setTmpl.Weight,
				WeightUnitID:     setTmpl.WeightUnitID,
				RestTime:         setTmpl.RestTime,
				Completed:        false,
				UpdatedAt:        now,
			}
			if err := s.store.CreateSet(ctx, set); err != nil {
				return err
			}
		}
	}
	return nil
}

func cloneComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	c := *comment
	return &c
}
