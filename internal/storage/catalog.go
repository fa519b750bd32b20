package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// GetExercise retrieves a catalog exercise by id.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (models.Exercise, error) {
	row := db.Pool.QueryRow(ctx, `SELECT id, name FROM exercises WHERE id = $1`, id)

	var e models.Exercise
	if err := row.Scan(&e.ID, &e.Name); err != nil {
		return models.Exercise{}, mapRowErr(err, "querying exercise")
	}
	return e, nil
}

// ListRepetitionUnits retrieves all repetition units sorted by name.
func (db *DB) ListRepetitionUnits(ctx context.Context) ([]models.RepetitionUnit, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name FROM repetition_units ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying repetition units: %w", err)
	}
	defer rows.Close()

	var result []models.RepetitionUnit
	for rows.Next() {
		var u models.RepetitionUnit
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("scanning repetition unit: %w", err)
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

// ListWeightUnits retrieves all weight units sorted by name.
func (db *DB) ListWeightUnits(ctx context.Context) ([]models.WeightUnit, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name FROM weight_units ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying weight units: %w", err)
	}
	defer rows.Close()

	var result []models.WeightUnit
	for rows.Next() {
		var u models.WeightUnit
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("scanning weight unit: %w", err)
		}
		result = append(result, u)
	}
	return result, rows.Err()
}
