package workout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// Service implements the domain operations: routine and session CRUD, sibling
// ordering, template cloning, and bulk edits. All operations take the calling
// user's id and reject callers that do not own the referenced records.
type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a Service backed by the given store.
func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// requireUser rejects absent identities before any store access.
func requireUser(userID int) error {
	if userID <= 0 {
		return &UnauthorizedError{Message: "missing user identity"}
	}
	return nil
}

func (s *Service) requireOwned(userID, ownerID int) error {
	if ownerID != userID {
		return &UnauthorizedError{Message: "resource is owned by another user"}
	}
	return nil
}

// mapNotFound converts the store sentinel into a typed NotFoundError.
func mapNotFound(err error, kind string, id any) error {
	if errors.Is(err, ErrNotFound) {
		return notFound(kind, id)
	}
	return err
}

// loadSetGroups returns the scope's groups, ordered, each with its ordered
// sets attached.
func (s *Service) loadSetGroups(ctx context.Context, scope models.Scope) ([]models.SetGroup, error) {
	groups, err := s.store.ListSetGroups(ctx, scope)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		sets, err := s.store.ListSets(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Sets = sets
	}
	return groups, nil
}

// getOwnedSetGroup fetches a group and checks ownership.
func (s *Service) getOwnedSetGroup(ctx context.Context, userID int, id uuid.UUID) (models.SetGroup, error) {
	group, err := s.store.GetSetGroup(ctx, id)
	if err != nil {
		return models.SetGroup{}, mapNotFound(err, "set group", id)
	}
	if err := s.requireOwned(userID, group.UserID); err != nil {
		return models.SetGroup{}, err
	}
	return group, nil
}

// Me returns the calling user's profile.
func (s *Service) Me(ctx context.Context, userID int) (models.User, error) {
	if err := requireUser(userID); err != nil {
		return models.User{}, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, mapNotFound(err, "user", userID)
	}
	return user, nil
}

// Units returns the unit catalogs for display.
func (s *Service) Units(ctx context.Context, userID int) ([]models.RepetitionUnit, []models.WeightUnit, error) {
	if err := requireUser(userID); err != nil {
		return nil, nil, err
	}
	reps, err := s.store.ListRepetitionUnits(ctx)
	if err != nil {
		return nil, nil, err
	}
	weights, err := s.store.ListWeightUnits(ctx)
	if err != nil {
		return nil, nil, err
	}
	return reps, weights, nil
}
