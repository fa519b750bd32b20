package workout

import (
	"context"
	"errors"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// CreateSessionInput carries the optional fields for starting a session. A
// nil StartTime defaults to now. A nil Name falls back to the template's
// description when a template is given.
type CreateSessionInput struct {
	TemplateID *uuid.UUID `json:"template_id,omitempty"`
	Name       *string    `json:"name,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	Impression *int       `json:"impression,omitempty"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
}

// UpdateSessionInput is a partial session update. TemplateID is immutable
// after creation; a value here is silently ignored. ClearEndTime reopens a
// closed session and is a data-correction path, not a normal transition.
type UpdateSessionInput struct {
	Name         *string    `json:"name,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	Impression   *int       `json:"impression,omitempty"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	ClearEndTime bool       `json:"clear_end_time,omitempty"`
	TemplateID   *uuid.UUID `json:"template_id,omitempty"`
}

func validImpression(impression *int) error {
	if impression != nil && (*impression < 1 || *impression > 5) {
		return validationf("impression must be between 1 and 5, got %d", *impression)
	}
	return nil
}

// CreateSession starts a workout session. When a template is given its set
// group tree is cloned into the new session; a template that no longer exists
// yields an empty session rather than an error. Creating a second open
// session for the same user is rejected.
func (s *Service) CreateSession(ctx context.Context, userID int, in CreateSessionInput) (models.WorkoutSession, error) {
	if err := requireUser(userID); err != nil {
		return models.WorkoutSession{}, err
	}
	if err := validImpression(in.Impression); err != nil {
		return models.WorkoutSession{}, err
	}

	var template *models.RoutineDay
	if in.TemplateID != nil {
		day, err := s.store.GetRoutineDay(ctx, *in.TemplateID)
		switch {
		case errors.Is(err, ErrNotFound):
			s.log.Warn("session template missing, creating empty session", "template_id", *in.TemplateID)
		case err != nil:
			return models.WorkoutSession{}, err
		default:
			if err := s.requireOwned(userID, day.UserID); err != nil {
				return models.WorkoutSession{}, err
			}
			template = &day
		}
	}

	startTime := s.now()
	if in.StartTime != nil {
		startTime = *in.StartTime
	}
	if in.EndTime != nil && !startTime.Before(*in.EndTime) {
		return models.WorkoutSession{}, validationf("start time must be before end time")
	}

	if in.EndTime == nil {
		open, err := s.store.ListOpenSessions(ctx, userID)
		if err != nil {
			return models.WorkoutSession{}, err
		}
		if len(open) > 0 {
			return models.WorkoutSession{}, validationf("user already has an open session (%s)", open[0].ID)
		}
	}

	name := ""
	switch {
	case in.Name != nil:
		name = *in.Name
	case template != nil:
		name = template.Description
	}
	notes := ""
	if in.Notes != nil {
		notes = *in.Notes
	}

	session := models.WorkoutSession{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		Notes:      notes,
		Impression: in.Impression,
		StartTime:  startTime,
		EndTime:    in.EndTime,
		TemplateID: in.TemplateID,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return models.WorkoutSession{}, err
	}

	if template != nil {
		if err := s.cloneTemplate(ctx, userID, *template, session.ID); err != nil {
			return models.WorkoutSession{}, err
		}
	}

	groups, err := s.loadSetGroups(ctx, models.SessionScope(session.ID))
	if err != nil {
		return models.WorkoutSession{}, err
	}
	session.SetGroups = groups
	return session, nil
}

// CurrentSession returns the user's open session, or nil if none. Derived at
// read time: with more than one open session (pre-constraint data) the most
// recently started wins.
func (s *Service) CurrentSession(ctx context.Context, userID int) (*models.WorkoutSession, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	open, err := s.store.ListOpenSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, nil
	}
	if len(open) > 1 {
		s.log.Warn("multiple open sessions, using most recent", "user_id", userID, "count", len(open))
	}

	current := open[0]
	for _, session := range open[1:] {
		if session.StartTime.After(current.StartTime) {
			current = session
		}
	}
	groups, err := s.loadSetGroups(ctx, models.SessionScope(current.ID))
	if err != nil {
		return nil, err
	}
	current.SetGroups = groups
	return &current, nil
}

// GetSession returns one session with its ordered group/set tree.
func (s *Service) GetSession(ctx context.Context, userID int, id uuid.UUID) (models.WorkoutSession, error) {
	if err := requireUser(userID); err != nil {
		return models.WorkoutSession{}, err
	}
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return models.WorkoutSession{}, mapNotFound(err, "session", id)
	}
	if err := s.requireOwned(userID, session.UserID); err != nil {
		return models.WorkoutSession{}, err
	}
	groups, err := s.loadSetGroups(ctx, models.SessionScope(session.ID))
	if err != nil {
		return models.WorkoutSession{}, err
	}
	session.SetGroups = groups
	return session, nil
}

// ListSessions returns the user's sessions, most recently started first, each
// with its group/set tree.
func (s *Service) ListSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	sessions, err := s.store.ListSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		groups, err := s.loadSetGroups(ctx, models.SessionScope(sessions[i].ID))
		if err != nil {
			return nil, err
		}
		sessions[i].SetGroups = groups
	}
	return sessions, nil
}

// UpdateSession applies a partial update. Setting an end time closes the
// session; once closed, the end time can only be removed through the explicit
// ClearEndTime correction flag, which re-checks the single-open invariant.
func (s *Service) UpdateSession(ctx context.Context, userID int, id uuid.UUID, in UpdateSessionInput) (models.WorkoutSession, error) {
	if err := requireUser(userID); err != nil {
		return models.WorkoutSession{}, err
	}
	if err := validImpression(in.Impression); err != nil {
		return models.WorkoutSession{}, err
	}
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return models.WorkoutSession{}, mapNotFound(err, "session", id)
	}
	if err := s.requireOwned(userID, session.UserID); err != nil {
		return models.WorkoutSession{}, err
	}
	if in.TemplateID != nil {
		s.log.Warn("ignoring template_id in session update, field is immutable", "session_id", id)
	}

	if in.Name != nil {
		session.Name = *in.Name
	}
	if in.Notes != nil {
		session.Notes = *in.Notes
	}
	if in.Impression != nil {
		session.Impression = in.Impression
	}
	if in.StartTime != nil {
		session.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		session.EndTime = in.EndTime
	}
	if in.ClearEndTime {
		open, err := s.store.ListOpenSessions(ctx, userID)
		if err != nil {
			return models.WorkoutSession{}, err
		}
		for _, other := range open {
			if other.ID != session.ID {
				return models.WorkoutSession{}, validationf("cannot reopen session: user already has an open session (%s)", other.ID)
			}
		}
		session.EndTime = nil
		s.log.Warn("session reopened via correction path", "session_id", session.ID, "user_id", userID)
	}

	if session.EndTime != nil && !session.StartTime.Before(*session.EndTime) {
		return models.WorkoutSession{}, validationf("start time must be before end time")
	}

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return models.WorkoutSession{}, mapNotFound(err, "session", id)
	}
	return session, nil
}

// DeleteSession deletes a session and cascades to its set groups and sets.
func (s *Service) DeleteSession(ctx context.Context, userID int, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return mapNotFound(err, "session", id)
	}
	if err := s.requireOwned(userID, session.UserID); err != nil {
		return err
	}

	groups, err := s.store.ListSetGroups(ctx, models.SessionScope(session.ID))
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
	if err := s.store.DeleteSession(ctx, session.ID); err != nil {
		return mapNotFound(err, "session", id)
	}
	return nil
}
