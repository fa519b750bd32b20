package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/workout"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const setGroupColumns = `id, user_id, routine_day_id, session_id, type, sort_order, comment, updated_at`

// CreateSetGroup inserts a set group row.
func (db *DB) CreateSetGroup(ctx context.Context, g models.SetGroup) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_set_groups (id, user_id, routine_day_id, session_id, type, sort_order, comment, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		g.ID, g.UserID, g.RoutineDayID, g.SessionID, g.Type, g.Order, g.Comment, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting set group: %w", err)
	}
	return nil
}

// GetSetGroup retrieves a single set group by id.
func (db *DB) GetSetGroup(ctx context.Context, id uuid.UUID) (models.SetGroup, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+setGroupColumns+` FROM workout_set_groups WHERE id = $1`, id)
	g, err := scanSetGroup(row)
	if err != nil {
		return models.SetGroup{}, mapRowErr(err, "querying set group")
	}
	return g, nil
}

// ListSetGroups retrieves a scope's set groups ordered by sort_order.
func (db *DB) ListSetGroups(ctx context.Context, scope models.Scope) ([]models.SetGroup, error) {
	query := `SELECT ` + setGroupColumns + ` FROM workout_set_groups WHERE `
	var parent any
	if scope.RoutineDayID != nil {
		query += `routine_day_id = $1`
		parent = *scope.RoutineDayID
	} else {
		query += `session_id = $1`
		parent = *scope.SessionID
	}
	query += ` ORDER BY sort_order ASC`

	rows, err := db.Pool.Query(ctx, query, parent)
	if err != nil {
		return nil, fmt.Errorf("querying set groups: %w", err)
	}
	defer rows.Close()

	var result []models.SetGroup
	for rows.Next() {
		g, err := scanSetGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning set group: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// UpdateSetGroupOrder writes one group's sort_order.
func (db *DB) UpdateSetGroupOrder(ctx context.Context, id uuid.UUID, order int) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workout_set_groups SET sort_order = $2 WHERE id = $1`, id, order)
	if err != nil {
		return fmt.Errorf("updating set group order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

// UpdateSetGroupComment sets or clears a group's comment.
func (db *DB) UpdateSetGroupComment(ctx context.Context, id uuid.UUID, comment *string) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workout_set_groups SET comment = $2, updated_at = NOW() WHERE id = $1`, id, comment)
	if err != nil {
		return fmt.Errorf("updating set group comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

// DeleteSetGroup deletes a set group row. Sets are deleted by the service.
func (db *DB) DeleteSetGroup(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workout_set_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting set group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

func scanSetGroup(row pgx.Row) (models.SetGroup, error) {
	var g models.SetGroup
	err := row.Scan(&g.ID, &g.UserID, &g.RoutineDayID, &g.SessionID,
		&g.Type, &g.Order, &g.Comment, &g.UpdatedAt)
	return g, err
}
