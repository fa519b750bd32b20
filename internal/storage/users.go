package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
)

// GetOrCreateUser finds or creates a user by login name, assigning the
// catalog's first repetition and weight units as defaults on first sight.
// Updates last_seen and display_name on each call.
func (db *DB) GetOrCreateUser(ctx context.Context, login, displayName string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (login, display_name, default_repetition_unit_id, default_weight_unit_id)
		VALUES ($1, $2,
			(SELECT id FROM repetition_units ORDER BY name LIMIT 1),
			(SELECT id FROM weight_units ORDER BY name LIMIT 1))
		ON CONFLICT (login) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), users.display_name)
		RETURNING id
	`, login, displayName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by id.
func (db *DB) GetUser(ctx context.Context, id int) (models.User, error) {
	row := db.Pool.QueryRow(ctx, `
		SELECT id, login, display_name, default_repetition_unit_id, default_weight_unit_id, last_seen
		FROM users WHERE id = $1
	`, id)

	var u models.User
	err := row.Scan(&u.ID, &u.Login, &u.DisplayName,
		&u.DefaultRepetitionUnitID, &u.DefaultWeightUnitID, &u.LastSeen)
	if err != nil {
		return models.User{}, mapRowErr(err, "querying user")
	}
	return u, nil
}
