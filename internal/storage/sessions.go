package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/workout"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, user_id, name, notes, impression, start_time, end_time, template_id`

// CreateSession inserts a workout session row.
func (db *DB) CreateSession(ctx context.Context, s models.WorkoutSession) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_sessions (id, user_id, name, notes, impression, start_time, end_time, template_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.UserID, s.Name, s.Notes, s.Impression, s.StartTime, s.EndTime, s.TemplateID)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// GetSession retrieves a single session by id.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (models.WorkoutSession, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM workout_sessions WHERE id = $1`, id)
	s, err := scanSession(row)
	if err != nil {
		return models.WorkoutSession{}, mapRowErr(err, "querying session")
	}
	return s, nil
}

// ListSessions retrieves a user's sessions, most recently started first.
func (db *DB) ListSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM workout_sessions
		 WHERE user_id = $1 ORDER BY start_time DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()
	return scanSessionRows(rows)
}

// ListOpenSessions retrieves a user's open (no end time) sessions, most
// recently started first. With the partial unique index in place this
// returns at most one row.
func (db *DB) ListOpenSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM workout_sessions
		 WHERE user_id = $1 AND end_time IS NULL ORDER BY start_time DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying open sessions: %w", err)
	}
	defer rows.Close()
	return scanSessionRows(rows)
}

// UpdateSession updates a session's mutable fields. template_id is immutable
// and deliberately absent from the statement.
func (db *DB) UpdateSession(ctx context.Context, s models.WorkoutSession) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workout_sessions
		 SET name = $2, notes = $3, impression = $4, start_time = $5, end_time = $6
		 WHERE id = $1`,
		s.ID, s.Name, s.Notes, s.Impression, s.StartTime, s.EndTime)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

// DeleteSession deletes a session row. Children are deleted by the service.
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workout_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

func scanSession(row pgx.Row) (models.WorkoutSession, error) {
	var s models.WorkoutSession
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Notes, &s.Impression,
		&s.StartTime, &s.EndTime, &s.TemplateID)
	return s, err
}

func scanSessionRows(rows pgx.Rows) ([]models.WorkoutSession, error) {
	var result []models.WorkoutSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
