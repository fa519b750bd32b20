package workout

import (
	"context"
	"errors"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned by Store implementations when a record does not
// exist. The service maps it to a typed NotFoundError at the operation level.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary: per-record CRUD plus ordered sibling
// listings. Implemented by the Postgres store and by the in-memory store used
// in tests. Multi-record atomicity is not assumed.
type Store interface {
	// Users
	GetUser(ctx context.Context, id int) (models.User, error)

	// Routines
	CreateRoutine(ctx context.Context, r models.Routine) error
	GetRoutine(ctx context.Context, id uuid.UUID) (models.Routine, error)
	ListRoutines(ctx context.Context, userID int) ([]models.Routine, error)
	UpdateRoutine(ctx context.Context, r models.Routine) error
	DeleteRoutine(ctx context.Context, id uuid.UUID) error

	// Routine days
	CreateRoutineDay(ctx context.Context, d models.RoutineDay) error
	GetRoutineDay(ctx context.Context, id uuid.UUID) (models.RoutineDay, error)
	ListRoutineDays(ctx context.Context, routineID uuid.UUID) ([]models.RoutineDay, error)
	UpdateRoutineDay(ctx context.Context, d models.RoutineDay) error
	DeleteRoutineDay(ctx context.Context, id uuid.UUID) error

	// Sessions
	CreateSession(ctx context.Context, s models.WorkoutSession) error
	GetSession(ctx context.Context, id uuid.UUID) (models.WorkoutSession, error)
	ListSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error)
	ListOpenSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error)
	UpdateSession(ctx context.Context, s models.WorkoutSession) error
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// Set groups. ListSetGroups returns the scope's groups ordered by their
	// order column, without child sets.
	CreateSetGroup(ctx context.Context, g models.SetGroup) error
	GetSetGroup(ctx context.Context, id uuid.UUID) (models.SetGroup, error)
	ListSetGroups(ctx context.Context, scope models.Scope) ([]models.SetGroup, error)
	UpdateSetGroupOrder(ctx context.Context, id uuid.UUID, order int) error
	UpdateSetGroupComment(ctx context.Context, id uuid.UUID, comment *string) error
	DeleteSetGroup(ctx context.Context, id uuid.UUID) error

	// Sets. ListSets returns the group's sets ordered by their order column.
	CreateSet(ctx context.Context, s models.Set) error
	GetSet(ctx context.Context, id uuid.UUID) (models.Set, error)
	ListSets(ctx context.Context, setGroupID uuid.UUID) ([]models.Set, error)
	UpdateSet(ctx context.Context, s models.Set) error
	UpdateSetOrder(ctx context.Context, id uuid.UUID, order int) error
	DeleteSet(ctx context.Context, id uuid.UUID) error

	// Catalogs (read-only reference data)
	GetExercise(ctx context.Context, id uuid.UUID) (models.Exercise, error)
	ListRepetitionUnits(ctx context.Context) ([]models.RepetitionUnit, error)
	ListWeightUnits(ctx context.Context) ([]models.WeightUnit, error)
}
