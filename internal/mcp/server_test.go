package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// TestUserIDFromContextAbsent verifies an unidentified caller maps to user 0,
// which every service operation rejects before touching the store.
func TestUserIDFromContextAbsent(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 0 {
		t.Errorf("UserIDFromContext(empty) = %d, want 0", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestDefaultTimeRange verifies time range defaults (last 30 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	// Both empty → defaults to last 30 days
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 719 || diff.Hours() > 721 { // ~720 hours = 30 days
		t.Errorf("default range = %.0f hours, want ~720", diff.Hours())
	}

	// Explicit dates
	start, end, err = defaultTimeRange("2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2026 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2026-01-01", start)
	}
	if end.Year() != 2026 || end.Month() != 1 || end.Day() != 31 {
		t.Errorf("end = %v, want 2026-01-31", end)
	}

	// RFC3339
	start, _, err = defaultTimeRange("2026-06-15T10:30:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}

	// Invalid
	_, _, err = defaultTimeRange("not-a-date", "")
	if err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestFilterSessions verifies the [start, end) window applied to session
// start times.
func TestFilterSessions(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 18, 0, 0, 0, time.UTC)
	}
	sessions := []models.WorkoutSession{
		{Name: "early", StartTime: day(1)},
		{Name: "inside", StartTime: day(10)},
		{Name: "edge", StartTime: day(20)},
	}

	got := filterSessions(sessions, day(5), day(20))
	if len(got) != 1 || got[0].Name != "inside" {
		t.Errorf("filterSessions = %v, want only %q", got, "inside")
	}

	// Inclusive start
	got = filterSessions(sessions, day(1), day(2))
	if len(got) != 1 || got[0].Name != "early" {
		t.Errorf("filterSessions start edge = %v, want only %q", got, "early")
	}
}
