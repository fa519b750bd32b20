package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/workout"
	"github.com/google/uuid"
)

// DataSource abstracts the read operations MCP tools need. Satisfied by
// *workout.Service; tools never write.
type DataSource interface {
	ListRoutines(ctx context.Context, userID int) ([]models.Routine, error)
	GetRoutineDay(ctx context.Context, userID int, id uuid.UUID) (models.RoutineDay, error)
	ListSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error)
	CurrentSession(ctx context.Context, userID int) (*models.WorkoutSession, error)
	GetSession(ctx context.Context, userID int, id uuid.UUID) (models.WorkoutSession, error)
}

// Compile-time check: *workout.Service satisfies DataSource.
var _ DataSource = (*workout.Service)(nil)
