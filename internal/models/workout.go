package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SetGroupType classifies how a group's sets are executed.
type SetGroupType string

const (
	SetGroupNormal   SetGroupType = "NORMAL"
	SetGroupSuperset SetGroupType = "SUPERSET"
)

// Valid reports whether t is a known set group type.
func (t SetGroupType) Valid() bool {
	return t == SetGroupNormal || t == SetGroupSuperset
}

// SetType classifies a single set.
type SetType string

const (
	SetNormal  SetType = "NORMAL"
	SetWarmup  SetType = "WARMUP"
	SetDropset SetType = "DROPSET"
	SetFailure SetType = "FAILURE"
)

// Valid reports whether t is a known set type.
func (t SetType) Valid() bool {
	switch t {
	case SetNormal, SetWarmup, SetDropset, SetFailure:
		return true
	}
	return false
}

// Scope identifies the parent of a run of SetGroup siblings: exactly one of
// RoutineDayID (template) or SessionID (live session) is set.
type Scope struct {
	RoutineDayID *uuid.UUID `json:"routine_day_id,omitempty"`
	SessionID    *uuid.UUID `json:"session_id,omitempty"`
}

// DayScope returns a Scope for a routine day.
func DayScope(dayID uuid.UUID) Scope { return Scope{RoutineDayID: &dayID} }

// SessionScope returns a Scope for a workout session.
func SessionScope(sessionID uuid.UUID) Scope { return Scope{SessionID: &sessionID} }

// Validate checks the exactly-one-parent rule.
func (s Scope) Validate() error {
	if (s.RoutineDayID == nil) == (s.SessionID == nil) {
		return fmt.Errorf("scope must reference exactly one of routine_day_id or session_id")
	}
	return nil
}

func (s Scope) String() string {
	if s.RoutineDayID != nil {
		return "day:" + s.RoutineDayID.String()
	}
	if s.SessionID != nil {
		return "session:" + s.SessionID.String()
	}
	return "scope:none"
}

// SetGroup is one exercise's block of sets within a routine day or a session.
type SetGroup struct {
	ID           uuid.UUID    `json:"id"`
	UserID       int          `json:"user_id"`
	RoutineDayID *uuid.UUID   `json:"routine_day_id,omitempty"`
	SessionID    *uuid.UUID   `json:"session_id,omitempty"`
	Type         SetGroupType `json:"type"`
	Order        int          `json:"order"`
	Comment      *string      `json:"comment,omitempty"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Sets         []Set        `json:"sets,omitempty"`
}

// Scope returns the group's parent scope.
func (g SetGroup) Scope() Scope {
	return Scope{RoutineDayID: g.RoutineDayID, SessionID: g.SessionID}
}

// Set is one unit of work (reps at a weight) within a SetGroup.
type Set struct {
	ID               uuid.UUID `json:"id"`
	UserID           int       `json:"user_id"`
	SetGroupID       uuid.UUID `json:"set_group_id"`
	ExerciseID       uuid.UUID `json:"exercise_id"`
	Type             SetType   `json:"type"`
	Order            int       `json:"order"`
	Reps             int       `json:"reps"`
	RepetitionUnitID uuid.UUID `json:"repetition_unit_id"`
	Weight           int       `json:"weight"`
	WeightUnitID     uuid.UUID `json:"weight_unit_id"`
	RestTime         int       `json:"rest_time"`
	Completed        bool      `json:"completed"`
	UpdatedAt        time.Time `json:"updated_at"`
}
