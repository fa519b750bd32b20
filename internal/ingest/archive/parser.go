package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Document is a session archive: completed workout sessions exported with
// their full set group trees, suitable for moving history between instances.
type Document struct {
	Version  int       `json:"version"`
	Sessions []Session `json:"sessions"`
}

// Session is one exported workout session.
type Session struct {
	Name       string     `json:"name"`
	Notes      *string    `json:"notes,omitempty"`
	Impression *int       `json:"impression,omitempty"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	SetGroups  []SetGroup `json:"set_groups"`
}

// SetGroup is one exported exercise block. Sets appear in execution order.
type SetGroup struct {
	Type    string  `json:"type,omitempty"`
	Comment *string `json:"comment,omitempty"`
	Sets    []Set   `json:"sets"`
}

// Set is one exported set. Unit ids are optional; absent units fall back to
// the importing user's defaults.
type Set struct {
	ExerciseID       uuid.UUID  `json:"exercise_id"`
	Type             string     `json:"type,omitempty"`
	Reps             int        `json:"reps"`
	RepetitionUnitID *uuid.UUID `json:"repetition_unit_id,omitempty"`
	Weight           int        `json:"weight"`
	WeightUnitID     *uuid.UUID `json:"weight_unit_id,omitempty"`
	RestTime         int        `json:"rest_time"`
	Completed        bool       `json:"completed"`
}

// Parse reads and validates an archive document.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding archive: %w", err)
	}
	if doc.Version != 1 {
		return nil, fmt.Errorf("unsupported archive version %d", doc.Version)
	}
	for i, s := range doc.Sessions {
		if s.StartTime.IsZero() {
			return nil, fmt.Errorf("session %d: missing start_time", i)
		}
	}
	return &doc, nil
}
