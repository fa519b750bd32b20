package workout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

func TestCreateSessionDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	day := seedDay(t, svc)

	session, err := svc.CreateSession(ctx, testUser, CreateSessionInput{TemplateID: &day.ID})
	if err != nil {
		t.Fatal(err)
	}
	if session.Name != day.Description {
		t.Errorf("name = %q, want template description %q", session.Name, day.Description)
	}
	if session.Notes != "" {
		t.Errorf("notes = %q, want empty", session.Notes)
	}
	if session.StartTime.IsZero() {
		t.Error("start time not defaulted")
	}
	if session.EndTime != nil {
		t.Error("new session should be open")
	}

	// An explicit name wins over the template description.
	if err := svc.DeleteSession(ctx, testUser, session.ID); err != nil {
		t.Fatal(err)
	}
	named, err := svc.CreateSession(ctx, testUser, CreateSessionInput{TemplateID: &day.ID, Name: strPtr("Heavy day")})
	if err != nil {
		t.Fatal(err)
	}
	if named.Name != "Heavy day" {
		t.Errorf("name = %q, want %q", named.Name, "Heavy day")
	}
}

func TestSingleOpenSessionPerUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.CreateSession(ctx, testUser, CreateSessionInput{})
	if err != nil {
		t.Fatal(err)
	}

	var verr *ValidationError
	if _, err := svc.CreateSession(ctx, testUser, CreateSessionInput{}); !errors.As(err, &verr) {
		t.Fatalf("second open session: got %v, want ValidationError", err)
	}

	// A closed session can be recorded alongside an open one.
	start := testBaseTime.Add(-2 * time.Hour)
	end := testBaseTime.Add(-1 * time.Hour)
	if _, err := svc.CreateSession(ctx, testUser, CreateSessionInput{StartTime: &start, EndTime: &end}); err != nil {
		t.Fatalf("closed session alongside open: %v", err)
	}

	// Another user is unaffected.
	if _, err := svc.CreateSession(ctx, otherUser, CreateSessionInput{}); err != nil {
		t.Fatalf("other user's open session: %v", err)
	}

	// Closing the first frees the slot.
	endNow := testBaseTime.Add(3 * time.Hour)
	if _, err := svc.UpdateSession(ctx, testUser, first.ID, UpdateSessionInput{EndTime: &endNow}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateSession(ctx, testUser, CreateSessionInput{}); err != nil {
		t.Fatalf("open after closing previous: %v", err)
	}
}

func TestCurrentSession(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	current, err := svc.CurrentSession(ctx, testUser)
	if err != nil {
		t.Fatal(err)
	}
	if current != nil {
		t.Fatalf("current = %v, want nil with no sessions", current)
	}

	session, err := svc.CreateSession(ctx, testUser, CreateSessionInput{})
	if err != nil {
		t.Fatal(err)
	}
	current, err = svc.CurrentSession(ctx, testUser)
	if err != nil {
		t.Fatal(err)
	}
	if current == nil || current.ID != session.ID {
		t.Fatalf("current = %v, want %s", current, session.ID)
	}

	end := svc.now()
	if _, err := svc.UpdateSession(ctx, testUser, session.ID, UpdateSessionInput{EndTime: &end}); err != nil {
		t.Fatal(err)
	}
	current, err = svc.CurrentSession(ctx, testUser)
	if err != nil {
		t.Fatal(err)
	}
	if current != nil {
		t.Errorf("current after close = %v, want nil", current)
	}
}

// With dirty data (two open sessions written around the constraint), the
// derived read picks the most recently started instead of failing.
func TestCurrentSessionDegradesGracefully(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	older := uuid.New()
	newer := uuid.New()
	store.sessions[older] = sessionFixture(older, testBaseTime)
	store.sessions[newer] = sessionFixture(newer, testBaseTime.Add(time.Hour))

	current, err := svc.CurrentSession(ctx, testUser)
	if err != nil {
		t.Fatal(err)
	}
	if current == nil || current.ID != newer {
		t.Fatalf("current = %v, want the most recent open session %s", current, newer)
	}
}

func TestUpdateSessionTimeValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testUser, CreateSessionInput{})
	if err != nil {
		t.Fatal(err)
	}

	var verr *ValidationError
	badEnd := session.StartTime.Add(-time.Minute)
	if _, err := svc.UpdateSession(ctx, testUser, session.ID, UpdateSessionInput{EndTime: &badEnd}); !errors.As(err, &verr) {
		t.Errorf("end before start: got %v, want ValidationError", err)
	}
	equal := session.StartTime
	if _, err := svc.UpdateSession(ctx, testUser, session.ID, UpdateSessionInput{EndTime: &equal}); !errors.As(err, &verr) {
		t.Errorf("end equal to start: got %v, want ValidationError", err)
	}

	impression := 6
	if _, err := svc.UpdateSession(ctx, testUser, session.ID, UpdateSessionInput{Impression: &impression}); !errors.As(err, &verr) {
		t.Errorf("impression 6: got %v, want ValidationError", err)
	}
}

func TestUpdateSessionIgnoresTemplateID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	day := seedDay(t, svc)

	session, err := svc.CreateSession(ctx, testUser, CreateSessionInput{TemplateID: &day.ID})
	if err != nil {
		t.Fatal(err)
	}

	rogue := uuid.New()
	updated, err := svc.UpdateSession(ctx, testUser, session.ID, UpdateSessionInput{Name: strPtr("renamed"), TemplateID: &rogue})
	if err != nil {
		t.Fatal(err)
	}
	if updated.TemplateID == nil || *updated.TemplateID != day.ID {
		t.Errorf("template id changed to %v, want %s", updated.TemplateID, day.ID)
	}
	if updated.Name != "renamed" {
		t.Errorf("name = %q", updated.Name)
	}
}

func TestReopenSessionCorrectionPath(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	end := testBaseTime.Add(2 * time.Hour)
	closed, err := svc.CreateSession(ctx, testUser, CreateSessionInput{EndTime: &end})
	if err != nil {
		t.Fatal(err)
	}

	reopened, err := svc.UpdateSession(ctx, testUser, closed.ID, UpdateSessionInput{ClearEndTime: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.EndTime != nil {
		t.Error("end time not cleared")
	}

	// Reopening a second session while one is open violates the invariant.
	end2 := testBaseTime.Add(3 * time.Hour)
	other, err := svc.CreateSession(ctx, testUser, CreateSessionInput{EndTime: &end2})
	if err != nil {
		t.Fatal(err)
	}
	var verr *ValidationError
	if _, err := svc.UpdateSession(ctx, testUser, other.ID, UpdateSessionInput{ClearEndTime: true}); !errors.As(err, &verr) {
		t.Errorf("reopen with another open: got %v, want ValidationError", err)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	day := seedTemplate(t, svc)

	session, err := svc.CreateSession(ctx, testUser, CreateSessionInput{TemplateID: &day.ID})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteSession(ctx, testUser, session.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, group := range session.SetGroups {
		if _, ok := store.groups[group.ID]; ok {
			t.Errorf("group %s survived the cascade", group.ID)
		}
		for _, set := range group.Sets {
			if _, ok := store.sets[set.ID]; ok {
				t.Errorf("set %s survived the cascade", set.ID)
			}
		}
	}

	var nferr *NotFoundError
	if _, err := svc.GetSession(ctx, testUser, session.ID); !errors.As(err, &nferr) {
		t.Errorf("get deleted session: got %v, want NotFoundError", err)
	}

	// The template is untouched by deleting the session.
	template, err := svc.GetRoutineDay(ctx, testUser, day.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(template.SetGroups) != 2 {
		t.Error("template affected by session delete")
	}
}

func TestListSessionsOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	times := []time.Time{
		testBaseTime.Add(-72 * time.Hour),
		testBaseTime.Add(-48 * time.Hour),
		testBaseTime.Add(-24 * time.Hour),
	}
	var ids []uuid.UUID
	for _, start := range times {
		end := start.Add(time.Hour)
		s, err := svc.CreateSession(ctx, testUser, CreateSessionInput{StartTime: &start, EndTime: &end})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, s.ID)
	}

	sessions, err := svc.ListSessions(ctx, testUser)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions", len(sessions))
	}
	// Most recently started first.
	want := []uuid.UUID{ids[2], ids[1], ids[0]}
	for i, s := range sessions {
		if s.ID != want[i] {
			t.Errorf("position %d = %s, want %s", i, s.ID, want[i])
		}
	}
}

func strPtr(s string) *string { return &s }

// sessionFixture is an open session written straight to the store, bypassing
// the service's write-time invariant check.
func sessionFixture(id uuid.UUID, start time.Time) models.WorkoutSession {
	return models.WorkoutSession{
		ID:        id,
		UserID:    testUser,
		Name:      "orphaned open session",
		StartTime: start,
	}
}
