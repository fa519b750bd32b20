package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/workout"
	"github.com/google/uuid"
)

// CreateRoutine inserts a routine row.
func (db *DB) CreateRoutine(ctx context.Context, r models.Routine) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO routines (id, user_id, name, description, updated_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		r.ID, r.UserID, r.Name, r.Description, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting routine: %w", err)
	}
	return nil
}

// GetRoutine retrieves a single routine by id.
func (db *DB) GetRoutine(ctx context.Context, id uuid.UUID) (models.Routine, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, description, updated_at FROM routines WHERE id = $1`, id)

	var r models.Routine
	if err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.Description, &r.UpdatedAt); err != nil {
		return models.Routine{}, mapRowErr(err, "querying routine")
	}
	return r, nil
}

// ListRoutines retrieves a user's routines, most recently touched first.
func (db *DB) ListRoutines(ctx context.Context, userID int) ([]models.Routine, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, description, updated_at
		 FROM routines WHERE user_id = $1
		 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying routines: %w", err)
	}
	defer rows.Close()

	var result []models.Routine
	for rows.Next() {
		var r models.Routine
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Description, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning routine: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// UpdateRoutine updates a routine's name, description, and updated_at.
func (db *DB) UpdateRoutine(ctx context.Context, r models.Routine) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE routines SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		r.ID, r.Name, r.Description, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating routine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

// DeleteRoutine deletes a routine row. Children are deleted by the service.
func (db *DB) DeleteRoutine(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM routines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting routine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

// CreateRoutineDay inserts a routine day row.
func (db *DB) CreateRoutineDay(ctx context.Context, d models.RoutineDay) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO routine_days (id, routine_id, user_id, description, weekdays, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		d.ID, d.RoutineID, d.UserID, d.Description, weekdaysToDB(d.Weekdays), d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting routine day: %w", err)
	}
	return nil
}

// GetRoutineDay retrieves a single routine day by id.
func (db *DB) GetRoutineDay(ctx context.Context, id uuid.UUID) (models.RoutineDay, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, routine_id, user_id, description, weekdays, updated_at
		 FROM routine_days WHERE id = $1`, id)

	var d models.RoutineDay
	var weekdays []int32
	if err := row.Scan(&d.ID, &d.RoutineID, &d.UserID, &d.Description, &weekdays, &d.UpdatedAt); err != nil {
		return models.RoutineDay{}, mapRowErr(err, "querying routine day")
	}
	d.Weekdays = weekdaysFromDB(weekdays)
	return d, nil
}

// ListRoutineDays retrieves a routine's days in creation order.
func (db *DB) ListRoutineDays(ctx context.Context, routineID uuid.UUID) ([]models.RoutineDay, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, routine_id, user_id, description, weekdays, updated_at
		 FROM routine_days WHERE routine_id = $1
		 ORDER BY created_at ASC`, routineID)
	if err != nil {
		return nil, fmt.Errorf("querying routine days: %w", err)
	}
	defer rows.Close()

	var result []models.RoutineDay
	for rows.Next() {
		var d models.RoutineDay
		var weekdays []int32
		if err := rows.Scan(&d.ID, &d.RoutineID, &d.UserID, &d.Description, &weekdays, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning routine day: %w", err)
		}
		d.Weekdays = weekdaysFromDB(weekdays)
		result = append(result, d)
	}
	return result, rows.Err()
}

// UpdateRoutineDay updates a day's description, weekdays, and updated_at.
func (db *DB) UpdateRoutineDay(ctx context.Context, d models.RoutineDay) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE routine_days SET description = $2, weekdays = $3, updated_at = $4 WHERE id = $1`,
		d.ID, d.Description, weekdaysToDB(d.Weekdays), d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating routine day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

// DeleteRoutineDay deletes a day row. Children are deleted by the service.
func (db *DB) DeleteRoutineDay(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM routine_days WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting routine day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

func weekdaysToDB(weekdays []int) []int32 {
	out := make([]int32, len(weekdays))
	for i, d := range weekdays {
		out[i] = int32(d)
	}
	return out
}

func weekdaysFromDB(weekdays []int32) []int {
	out := make([]int, len(weekdays))
	for i, d := range weekdays {
		out[i] = int(d)
	}
	return out
}
