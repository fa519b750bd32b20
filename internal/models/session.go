package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutSession is a concrete, timestamped execution of a workout. A session
// with no end time is "open"; at most one session per user is open at a time.
type WorkoutSession struct {
	ID         uuid.UUID  `json:"id"`
	UserID     int        `json:"user_id"`
	Name       string     `json:"name"`
	Notes      string     `json:"notes"`
	Impression *int       `json:"impression,omitempty"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	TemplateID *uuid.UUID `json:"template_id,omitempty"`
	SetGroups  []SetGroup `json:"set_groups,omitempty"`
}

// Open reports whether the session has not been closed yet.
func (s WorkoutSession) Open() bool { return s.EndTime == nil }
