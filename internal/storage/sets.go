package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/workout"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const setColumns = `id, user_id, set_group_id, exercise_id, type, sort_order,
	reps, repetition_unit_id, weight, weight_unit_id, rest_time, completed, updated_at`

// CreateSet inserts a workout set row.
func (db *DB) CreateSet(ctx context.Context, s models.Set) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_sets (id, user_id, set_group_id, exercise_id, type, sort_order,
		 reps, repetition_unit_id, weight, weight_unit_id, rest_time, completed, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		s.ID, s.UserID, s.SetGroupID, s.ExerciseID, s.Type, s.Order,
		s.Reps, s.RepetitionUnitID, s.Weight, s.WeightUnitID, s.RestTime, s.Completed, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting set: %w", err)
	}
	return nil
}

// GetSet retrieves a single set by id.
func (db *DB) GetSet(ctx context.Context, id uuid.UUID) (models.Set, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+setColumns+` FROM workout_sets WHERE id = $1`, id)
	s, err := scanSet(row)
	if err != nil {
		return models.Set{}, mapRowErr(err, "querying set")
	}
	return s, nil
}

// ListSets retrieves a group's sets ordered by sort_order.
func (db *DB) ListSets(ctx context.Context, setGroupID uuid.UUID) ([]models.Set, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+setColumns+` FROM workout_sets
		 WHERE set_group_id = $1 ORDER BY sort_order ASC`, setGroupID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	var result []models.Set
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// UpdateSet updates a set's execution fields. Order and group membership are
// written only through UpdateSetOrder and never change here.
func (db *DB) UpdateSet(ctx context.Context, s models.Set) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workout_sets
		 SET type = $2, reps = $3, repetition_unit_id = $4, weight = $5,
		     weight_unit_id = $6, rest_time = $7, completed = $8, updated_at = $9
		 WHERE id = $1`,
		s.ID, s.Type, s.Reps, s.RepetitionUnitID, s.Weight,
		s.WeightUnitID, s.RestTime, s.Completed, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

// UpdateSetOrder writes one set's sort_order.
func (db *DB) UpdateSetOrder(ctx context.Context, id uuid.UUID, order int) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workout_sets SET sort_order = $2 WHERE id = $1`, id, order)
	if err != nil {
		return fmt.Errorf("updating set order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

// DeleteSet deletes a set row.
func (db *DB) DeleteSet(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workout_sets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

func scanSet(row pgx.Row) (models.Set, error) {
	var s models.Set
	err := row.Scan(&s.ID, &s.UserID, &s.SetGroupID, &s.ExerciseID, &s.Type, &s.Order,
		&s.Reps, &s.RepetitionUnitID, &s.Weight, &s.WeightUnitID,
		&s.RestTime, &s.Completed, &s.UpdatedAt)
	return s, err
}
