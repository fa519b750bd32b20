package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Routine is a named, reusable collection of workout days.
type Routine struct {
	ID          uuid.UUID    `json:"id"`
	UserID      int          `json:"user_id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Days        []RoutineDay `json:"days,omitempty"`
}

// RoutineDay is one day's exercise plan within a routine, assignable to
// weekdays (1..7, Monday=1).
type RoutineDay struct {
	ID          uuid.UUID  `json:"id"`
	RoutineID   uuid.UUID  `json:"routine_id"`
	UserID      int        `json:"user_id"`
	Description string     `json:"description"`
	Weekdays    []int      `json:"weekdays"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SetGroups   []SetGroup `json:"set_groups,omitempty"`
}

// NormalizeWeekdays sorts weekdays ascending and rejects values outside 1..7
// and duplicates. Returns a new slice; the input is not modified.
func NormalizeWeekdays(weekdays []int) ([]int, error) {
	out := make([]int, len(weekdays))
	copy(out, weekdays)
	sort.Ints(out)
	for i, d := range out {
		if d < 1 || d > 7 {
			return nil, fmt.Errorf("weekday %d out of range 1..7", d)
		}
		if i > 0 && out[i-1] == d {
			return nil, fmt.Errorf("duplicate weekday %d", d)
		}
	}
	return out, nil
}
