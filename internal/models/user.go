package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account resolved by the identity layer. Default units are
// applied to newly created sets.
type User struct {
	ID                      int       `json:"id"`
	Login                   string    `json:"login"`
	DisplayName             string    `json:"display_name"`
	DefaultRepetitionUnitID uuid.UUID `json:"default_repetition_unit_id"`
	DefaultWeightUnitID     uuid.UUID `json:"default_weight_unit_id"`
	LastSeen                time.Time `json:"last_seen"`
}

// RepetitionUnit is lookup data for how repetitions are counted
// (e.g. "Repetitions", "Seconds").
type RepetitionUnit struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// WeightUnit is lookup data for how weight is measured (e.g. "kg", "lb").
type WeightUnit struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Exercise is a catalog entry referenced by sets. The catalog is maintained
// outside this service; only id and name cross the boundary.
type Exercise struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
