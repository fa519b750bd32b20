package workout

import (
	"context"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// checkScope verifies the scope is well formed, that its parent exists, and
// that the caller owns it.
func (s *Service) checkScope(ctx context.Context, userID int, scope models.Scope) error {
	if err := scope.Validate(); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	if scope.RoutineDayID != nil {
		day, err := s.store.GetRoutineDay(ctx, *scope.RoutineDayID)
		if err != nil {
			return mapNotFound(err, "routine day", *scope.RoutineDayID)
		}
		return s.requireOwned(userID, day.UserID)
	}
	session, err := s.store.GetSession(ctx, *scope.SessionID)
	if err != nil {
		return mapNotFound(err, "session", *scope.SessionID)
	}
	return s.requireOwned(userID, session.UserID)
}

// touchScope bumps updatedAt on the routine day and its routine after a
// template mutation so "recently edited" listings stay honest. Best effort:
// failures are logged, not surfaced.
func (s *Service) touchScope(ctx context.Context, scope models.Scope) {
	if scope.RoutineDayID == nil {
		return
	}
	now := s.now()
	day, err := s.store.GetRoutineDay(ctx, *scope.RoutineDayID)
	if err != nil {
		s.log.Warn("touch routine day", "day_id", *scope.RoutineDayID, "error", err)
		return
	}
	day.UpdatedAt = now
	if err := s.store.UpdateRoutineDay(ctx, day); err != nil {
		s.log.Warn("touch routine day", "day_id", day.ID, "error", err)
		return
	}
	routine, err := s.store.GetRoutine(ctx, day.RoutineID)
	if err != nil {
		s.log.Warn("touch routine", "routine_id", day.RoutineID, "error", err)
		return
	}
	routine.UpdatedAt = now
	if err := s.store.UpdateRoutine(ctx, routine); err != nil {
		s.log.Warn("touch routine", "routine_id", routine.ID, "error", err)
	}
}

// CreateSetGroup creates a NORMAL group at the scope's tail order with
// setCount sets (orders 0..setCount-1), each inheriting the user's default
// units with zero reps and weight.
func (s *Service) CreateSetGroup(ctx context.Context, userID int, scope models.Scope, exerciseID uuid.UUID, setCount int) (models.SetGroup, error) {
	if err := requireUser(userID); err != nil {
		return models.SetGroup{}, err
	}
	if setCount < 1 {
		return models.SetGroup{}, validationf("set count must be at least 1, got %d", setCount)
	}
	if err := s.checkScope(ctx, userID, scope); err != nil {
		return models.SetGroup{}, err
	}
	if _, err := s.store.GetExercise(ctx, exerciseID); err != nil {
		return models.SetGroup{}, mapNotFound(err, "exercise", exerciseID)
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return models.SetGroup{}, mapNotFound(err, "user", userID)
	}

	siblings, err := s.listGroupSiblings(ctx, scope)
	if err != nil {
		return models.SetGroup{}, err
	}

	now := s.now()
	group := models.SetGroup{
		ID:           uuid.New(),
		UserID:       userID,
		RoutineDayID: scope.RoutineDayID,
		SessionID:    scope.SessionID,
		Type:         models.SetGroupNormal,
		Order:        nextOrder(siblings),
		UpdatedAt:    now,
	}
	if err := s.store.CreateSetGroup(ctx, group); err != nil {
		return models.SetGroup{}, err
	}

	for i := 0; i < setCount; i++ {
		set := models.Set{
			ID:               uuid.New(),
			UserID:           userID,
			SetGroupID:       group.ID,
			ExerciseID:       exerciseID,
			Type:             models.SetNormal,
			Order:            i,
			Reps:             0,
			RepetitionUnitID: user.DefaultRepetitionUnitID,
			Weight:           0,
			WeightUnitID:     user.DefaultWeightUnitID,
			RestTime:         0,
			Completed:        false,
			UpdatedAt:        now,
		}
		if err := s.store.CreateSet(ctx, set); err != nil {
			return models.SetGroup{}, err
		}
		group.Sets = append(group.Sets, set)
	}

	s.touchScope(ctx, scope)
	return group, nil
}

// CreateSet appends one set to the group at the next free order.
func (s *Service) CreateSet(ctx context.Context, userID int, setGroupID, exerciseID uuid.UUID) (models.Set, error) {
	if err := requireUser(userID); err != nil {
		return models.Set{}, err
	}
	group, err := s.getOwnedSetGroup(ctx, userID, setGroupID)
	if err != nil {
		return models.Set{}, err
	}
	if _, err := s.store.GetExercise(ctx, exerciseID); err != nil {
		return models.Set{}, mapNotFound(err, "exercise", exerciseID)
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return models.Set{}, mapNotFound(err, "user", userID)
	}
	siblings, err := s.listSetSiblings(ctx, group.ID)
	if err != nil {
		return models.Set{}, err
	}

	set := models.Set{
		ID:               uuid.New(),
		UserID:           userID,
		SetGroupID:       group.ID,
		ExerciseID:       exerciseID,
		Type:             models.SetNormal,
		Order:            nextOrder(siblings),
		RepetitionUnitID: user.DefaultRepetitionUnitID,
		WeightUnitID:     user.DefaultWeightUnitID,
		UpdatedAt:        s.now(),
	}
	if err := s.store.CreateSet(ctx, set); err != nil {
		return models.Set{}, err
	}
	s.touchScope(ctx, group.Scope())
	return set, nil
}

// SetPatch is a partial update for one or many sets. Nil fields are left
// unchanged. Order and group membership are never patched through this path.
type SetPatch struct {
	Type             *models.SetType `json:"type,omitempty"`
	Reps             *int            `json:"reps,omitempty"`
	RepetitionUnitID *uuid.UUID      `json:"repetition_unit_id,omitempty"`
	Weight           *int            `json:"weight,omitempty"`
	WeightUnitID     *uuid.UUID      `json:"weight_unit_id,omitempty"`
	RestTime         *int            `json:"rest_time,omitempty"`
	Completed        *bool           `json:"completed,omitempty"`
}

func (p SetPatch) validate() error {
	if p.Type != nil && !p.Type.Valid() {
		return validationf("invalid set type %q", *p.Type)
	}
	if p.Reps != nil && *p.Reps < 0 {
		return validationf("reps must not be negative")
	}
	if p.Weight != nil && *p.Weight < 0 {
		return validationf("weight must not be negative")
	}
	if p.RestTime != nil && *p.RestTime < 0 {
		return validationf("rest time must not be negative")
	}
	return nil
}

func (p SetPatch) apply(set *models.Set) {
	if p.Type != nil {
		set.Type = *p.Type
	}
	if p.Reps != nil {
		set.Reps = *p.Reps
	}
	if p.RepetitionUnitID != nil {
		set.RepetitionUnitID = *p.RepetitionUnitID
	}
	if p.Weight != nil {
		set.Weight = *p.Weight
	}
	if p.WeightUnitID != nil {
		set.WeightUnitID = *p.WeightUnitID
	}
	if p.RestTime != nil {
		set.RestTime = *p.RestTime
	}
	if p.Completed != nil {
		set.Completed = *p.Completed
	}
}

// UpdateSet applies a partial update to one set.
func (s *Service) UpdateSet(ctx context.Context, userID int, setID uuid.UUID, patch SetPatch) (models.Set, error) {
	if err := requireUser(userID); err != nil {
		return models.Set{}, err
	}
	if err := patch.validate(); err != nil {
		return models.Set{}, err
	}
	set, err := s.store.GetSet(ctx, setID)
	if err != nil {
		return models.Set{}, mapNotFound(err, "set", setID)
	}
	if err := s.requireOwned(userID, set.UserID); err != nil {
		return models.Set{}, err
	}

	patch.apply(&set)
	set.UpdatedAt = s.now()
	if err := s.store.UpdateSet(ctx, set); err != nil {
		return models.Set{}, mapNotFound(err, "set", setID)
	}

	if group, err := s.store.GetSetGroup(ctx, set.SetGroupID); err == nil {
		s.touchScope(ctx, group.Scope())
	}
	return set, nil
}

// DeleteSet deletes one set and compacts the orders of its former siblings.
func (s *Service) DeleteSet(ctx context.Context, userID int, setID uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	set, err := s.store.GetSet(ctx, setID)
	if err != nil {
		return mapNotFound(err, "set", setID)
	}
	if err := s.requireOwned(userID, set.UserID); err != nil {
		return err
	}

	if err := s.store.DeleteSet(ctx, setID); err != nil {
		return mapNotFound(err, "set", setID)
	}

	siblings, err := s.listSetSiblings(ctx, set.SetGroupID)
	if err != nil {
		return err
	}
	for _, w := range planCompaction(siblings, set.Order) {
		if err := s.store.UpdateSetOrder(ctx, w.id, w.order); err != nil {
			s.renumberSets(ctx, set.SetGroupID)
			return mapStale(err, "set group "+set.SetGroupID.String(), w.id)
		}
	}

	if group, err := s.store.GetSetGroup(ctx, set.SetGroupID); err == nil {
		s.touchScope(ctx, group.Scope())
	}
	return nil
}

// DeleteSetGroup deletes the group's sets, the group itself, and compacts the
// orders of its former siblings within the parent scope.
func (s *Service) DeleteSetGroup(ctx context.Context, userID int, setGroupID uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	group, err := s.getOwnedSetGroup(ctx, userID, setGroupID)
	if err != nil {
		return err
	}

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

	scope := group.Scope()
	siblings, err := s.listGroupSiblings(ctx, scope)
	if err != nil {
		return err
	}
	for _, w := range planCompaction(siblings, group.Order) {
		if err := s.store.UpdateSetGroupOrder(ctx, w.id, w.order); err != nil {
			s.renumberGroups(ctx, scope)
			return mapStale(err, scope.String(), w.id)
		}
	}

	s.touchScope(ctx, scope)
	return nil
}

// ReorderSetGroups rewrites the scope's group orders to match orderedIDs,
// which must be exactly the scope's current groups. A write that hits a
// vanished group surfaces StaleReferenceError after the survivors are
// renumbered back to a contiguous run.
func (s *Service) ReorderSetGroups(ctx context.Context, userID int, scope models.Scope, orderedIDs []uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := s.checkScope(ctx, userID, scope); err != nil {
		return err
	}
	siblings, err := s.listGroupSiblings(ctx, scope)
	if err != nil {
		return err
	}
	writes, err := planResequence(siblings, orderedIDs)
	if err != nil {
		return err
	}
	for _, w := range writes {
		if err := s.store.UpdateSetGroupOrder(ctx, w.id, w.order); err != nil {
			s.renumberGroups(ctx, scope)
			return mapStale(err, scope.String(), w.id)
		}
	}
	s.touchScope(ctx, scope)
	return nil
}

// ReorderSets rewrites the group's set orders to match orderedIDs, which must
// be exactly the group's current sets.
func (s *Service) ReorderSets(ctx context.Context, userID int, setGroupID uuid.UUID, orderedIDs []uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	group, err := s.getOwnedSetGroup(ctx, userID, setGroupID)
	if err != nil {
		return err
	}
	siblings, err := s.listSetSiblings(ctx, group.ID)
	if err != nil {
		return err
	}
	writes, err := planResequence(siblings, orderedIDs)
	if err != nil {
		return err
	}
	for _, w := range writes {
		if err := s.store.UpdateSetOrder(ctx, w.id, w.order); err != nil {
			s.renumberSets(ctx, group.ID)
			return mapStale(err, "set group "+group.ID.String(), w.id)
		}
	}
	s.touchScope(ctx, group.Scope())
	return nil
}

// UpdateSetGroupComment sets or clears the group's free-text comment.
func (s *Service) UpdateSetGroupComment(ctx context.Context, userID int, setGroupID uuid.UUID, comment *string) (models.SetGroup, error) {
	if err := requireUser(userID); err != nil {
		return models.SetGroup{}, err
	}
	group, err := s.getOwnedSetGroup(ctx, userID, setGroupID)
	if err != nil {
		return models.SetGroup{}, err
	}
	if err := s.store.UpdateSetGroupComment(ctx, group.ID, comment); err != nil {
		return models.SetGroup{}, mapNotFound(err, "set group", group.ID)
	}
	group.Comment = comment
	s.touchScope(ctx, group.Scope())
	return group, nil
}

// renumberGroups rewrites the scope's surviving group orders to 0..n-1. Called
// when an order write fails mid-sequence, so a partially applied reorder or
// compaction never leaves duplicate or gapped orders behind. Best effort: a
// sibling that also vanished is logged and skipped.
func (s *Service) renumberGroups(ctx context.Context, scope models.Scope) {
	siblings, err := s.listGroupSiblings(ctx, scope)
	if err != nil {
		s.log.Warn("renumber set groups", "scope", scope.String(), "error", err)
		return
	}
	for i, sib := range siblings {
		if sib.order == i {
			continue
		}
		if err := s.store.UpdateSetGroupOrder(ctx, sib.id, i); err != nil {
			s.log.Warn("renumber set groups", "scope", scope.String(), "group_id", sib.id, "error", err)
		}
	}
}

// renumberSets is renumberGroups for a group's sets.
func (s *Service) renumberSets(ctx context.Context, setGroupID uuid.UUID) {
	siblings, err := s.listSetSiblings(ctx, setGroupID)
	if err != nil {
		s.log.Warn("renumber sets", "set_group_id", setGroupID, "error", err)
		return
	}
	for i, sib := range siblings {
		if sib.order == i {
			continue
		}
		if err := s.store.UpdateSetOrder(ctx, sib.id, i); err != nil {
			s.log.Warn("renumber sets", "set_group_id", setGroupID, "set_id", sib.id, "error", err)
		}
	}
}

func (s *Service) listGroupSiblings(ctx context.Context, scope models.Scope) ([]sibling, error) {
	groups, err := s.store.ListSetGroups(ctx, scope)
	if err != nil {
		return nil, err
	}
	siblings := make([]sibling, len(groups))
	for i, g := range groups {
		siblings[i] = sibling{id: g.ID, order: g.Order}
	}
	return siblings, nil
}

func (s *Service) listSetSiblings(ctx context.Context, setGroupID uuid.UUID) ([]sibling, error) {
	sets, err := s.store.ListSets(ctx, setGroupID)
	if err != nil {
		return nil, err
	}
	siblings := make([]sibling, len(sets))
	for i, set := range sets {
		siblings[i] = sibling{id: set.ID, order: set.Order}
	}
	return siblings, nil
}
