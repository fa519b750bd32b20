package workout

import (
	"context"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// CreateRoutine creates an empty named routine.
func (s *Service) CreateRoutine(ctx context.Context, userID int, name string, description *string) (models.Routine, error) {
	if err := requireUser(userID); err != nil {
		return models.Routine{}, err
	}
	if name == "" {
		return models.Routine{}, validationf("routine name is required")
	}
	routine := models.Routine{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		UpdatedAt:   s.now(),
	}
	if err := s.store.CreateRoutine(ctx, routine); err != nil {
		return models.Routine{}, err
	}
	return routine, nil
}

// ListRoutines returns the user's routines, most recently touched first,
// with their days attached.
func (s *Service) ListRoutines(ctx context.Context, userID int) ([]models.Routine, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	routines, err := s.store.ListRoutines(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range routines {
		days, err := s.store.ListRoutineDays(ctx, routines[i].ID)
		if err != nil {
			return nil, err
		}
		routines[i].Days = days
	}
	return routines, nil
}

// GetRoutine returns one routine with its days.
func (s *Service) GetRoutine(ctx context.Context, userID int, id uuid.UUID) (models.Routine, error) {
	if err := requireUser(userID); err != nil {
		return models.Routine{}, err
	}
	routine, err := s.store.GetRoutine(ctx, id)
	if err != nil {
		return models.Routine{}, mapNotFound(err, "routine", id)
	}
	if err := s.requireOwned(userID, routine.UserID); err != nil {
		return models.Routine{}, err
	}
	days, err := s.store.ListRoutineDays(ctx, routine.ID)
	if err != nil {
		return models.Routine{}, err
	}
	routine.Days = days
	return routine, nil
}

// UpdateRoutineInput is a partial routine update.
type UpdateRoutineInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateRoutine applies a partial update to a routine's name and description.
func (s *Service) UpdateRoutine(ctx context.Context, userID int, id uuid.UUID, in UpdateRoutineInput) (models.Routine, error) {
	if err := requireUser(userID); err != nil {
		return models.Routine{}, err
	}
	routine, err := s.store.GetRoutine(ctx, id)
	if err != nil {
		return models.Routine{}, mapNotFound(err, "routine", id)
	}
	if err := s.requireOwned(userID, routine.UserID); err != nil {
		return models.Routine{}, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return models.Routine{}, validationf("routine name is required")
		}
		routine.Name = *in.Name
	}
	if in.Description != nil {
		routine.Description = in.Description
	}
	routine.UpdatedAt = s.now()
	if err := s.store.UpdateRoutine(ctx, routine); err != nil {
		return models.Routine{}, mapNotFound(err, "routine", id)
	}
	return routine, nil
}

// DeleteRoutine deletes a routine and cascades to its days, groups, and sets.
func (s *Service) DeleteRoutine(ctx context.Context, userID int, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	routine, err := s.store.GetRoutine(ctx, id)
	if err != nil {
		return mapNotFound(err, "routine", id)
	}
	if err := s.requireOwned(userID, routine.UserID); err != nil {
		return err
	}
	days, err := s.store.ListRoutineDays(ctx, routine.ID)
	if err != nil {
		return err
	}
	for _, day := range days {
		if err := s.deleteDayTree(ctx, day.ID); err != nil {
			return err
		}
	}
	if err := s.store.DeleteRoutine(ctx, routine.ID); err != nil {
		return mapNotFound(err, "routine", id)
	}
	return nil
}

// CreateRoutineDay adds a day to a routine. Weekdays are normalized to a
// strictly ascending sequence in 1..7.
func (s *Service) CreateRoutineDay(ctx context.Context, userID int, routineID uuid.UUID, description string, weekdays []int) (models.RoutineDay, error) {
	if err := requireUser(userID); err != nil {
		return models.RoutineDay{}, err
	}
	if description == "" {
		return models.RoutineDay{}, validationf("day description is required")
	}
	normalized, err := models.NormalizeWeekdays(weekdays)
	if err != nil {
		return models.RoutineDay{}, &ValidationError{Message: err.Error()}
	}
	routine, err := s.store.GetRoutine(ctx, routineID)
	if err != nil {
		return models.RoutineDay{}, mapNotFound(err, "routine", routineID)
	}
	if err := s.requireOwned(userID, routine.UserID); err != nil {
		return models.RoutineDay{}, err
	}

	now := s.now()
	day := models.RoutineDay{
		ID:          uuid.New(),
		RoutineID:   routine.ID,
		UserID:      userID,
		Description: description,
		Weekdays:    normalized,
		UpdatedAt:   now,
	}
	if err := s.store.CreateRoutineDay(ctx, day); err != nil {
		return models.RoutineDay{}, err
	}

	routine.UpdatedAt = now
	if err := s.store.UpdateRoutine(ctx, routine); err != nil {
		s.log.Warn("touch routine", "routine_id", routine.ID, "error", err)
	}
	return day, nil
}

// GetRoutineDay returns one day with its ordered group/set tree.
func (s *Service) GetRoutineDay(ctx context.Context, userID int, id uuid.UUID) (models.RoutineDay, error) {
	if err := requireUser(userID); err != nil {
		return models.RoutineDay{}, err
	}
	day, err := s.store.GetRoutineDay(ctx, id)
	if err != nil {
		return models.RoutineDay{}, mapNotFound(err, "routine day", id)
	}
	if err := s.requireOwned(userID, day.UserID); err != nil {
		return models.RoutineDay{}, err
	}
	groups, err := s.loadSetGroups(ctx, models.DayScope(day.ID))
	if err != nil {
		return models.RoutineDay{}, err
	}
	day.SetGroups = groups
	return day, nil
}

// UpdateRoutineDayInput is a partial routine day update. A non-nil Weekdays
// replaces the full weekday set.
type UpdateRoutineDayInput struct {
	Description *string `json:"description,omitempty"`
	Weekdays    []int   `json:"weekdays,omitempty"`
}

// UpdateRoutineDay applies a partial update to a day.
func (s *Service) UpdateRoutineDay(ctx context.Context, userID int, id uuid.UUID, in UpdateRoutineDayInput) (models.RoutineDay, error) {
	if err := requireUser(userID); err != nil {
		return models.RoutineDay{}, err
	}
	day, err := s.store.GetRoutineDay(ctx, id)
	if err != nil {
		return models.RoutineDay{}, mapNotFound(err, "routine day", id)
	}
	if err := s.requireOwned(userID, day.UserID); err != nil {
		return models.RoutineDay{}, err
	}
	if in.Description != nil {
		if *in.Description == "" {
			return models.RoutineDay{}, validationf("day description is required")
		}
		day.Description = *in.Description
	}
	if in.Weekdays != nil {
		normalized, err := models.NormalizeWeekdays(in.Weekdays)
		if err != nil {
			return models.RoutineDay{}, &ValidationError{Message: err.Error()}
		}
		day.Weekdays = normalized
	}
	day.UpdatedAt = s.now()
	if err := s.store.UpdateRoutineDay(ctx, day); err != nil {
		return models.RoutineDay{}, mapNotFound(err, "routine day", id)
	}
	s.touchScope(ctx, models.DayScope(day.ID))
	return day, nil
}

// DeleteRoutineDay deletes a day and cascades to its groups and sets.
func (s *Service) DeleteRoutineDay(ctx context.Context, userID int, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	day, err := s.store.GetRoutineDay(ctx, id)
	if err != nil {
		return mapNotFound(err, "routine day", id)
	}
	if err := s.requireOwned(userID, day.UserID); err != nil {
		return err
	}
	if err := s.deleteDayTree(ctx, day.ID); err != nil {
		return err
	}

	routine, err := s.store.GetRoutine(ctx, day.RoutineID)
	if err == nil {
		routine.UpdatedAt = s.now()
		if err := s.store.UpdateRoutine(ctx, routine); err != nil {
			s.log.Warn("touch routine", "routine_id", routine.ID, "error", err)
		}
	}
	return nil
}

// deleteDayTree removes a day and its groups and sets, children first.
func (s *Service) deleteDayTree(ctx context.Context, dayID uuid.UUID) error {
	groups, err := s.store.ListSetGroups(ctx, models.DayScope(dayID))
	if err != nil {
		return err
	}
	for _, group := range groups {
		sets, err := s.store.ListSets(ctx, group.ID)
		if err != nil {
			return err
		}
		for _, set := range sets {
			if err := s.store.DeleteSet(ctx, set.ID); err != nil {
				return mapNotFound(err, "set", set.ID)
			}
		}
		if err := s.store.DeleteSetGroup(ctx, group.ID); err != nil {
			return mapNotFound(err, "set group", group.ID)
		}
	}
	if err := s.store.DeleteRoutineDay(ctx, dayID); err != nil {
		return mapNotFound(err, "routine day", dayID)
	}
	return nil
}
