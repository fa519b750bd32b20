package workout

import (
	"context"
	"errors"
	"testing"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

func TestCreateSetGroupDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	day := seedDay(t, svc)

	group, err := svc.CreateSetGroup(ctx, testUser, models.DayScope(day.ID), benchPress.ID, 3)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	if group.Type != models.SetGroupNormal {
		t.Errorf("type = %q, want NORMAL", group.Type)
	}
	if group.Order != 0 {
		t.Errorf("order = %d, want 0", group.Order)
	}
	if group.RoutineDayID == nil || group.SessionID != nil {
		t.Error("group should be scoped to the routine day only")
	}
	if len(group.Sets) != 3 {
		t.Fatalf("got %d sets, want 3", len(group.Sets))
	}
	for i, set := range group.Sets {
		if set.Order != i {
			t.Errorf("set %d order = %d", i, set.Order)
		}
		if set.Type != models.SetNormal {
			t.Errorf("set %d type = %q, want NORMAL", i, set.Type)
		}
		if set.Reps != 0 || set.Weight != 0 || set.Completed {
			t.Errorf("set %d should start at zero reps/weight, not completed", i)
		}
		if set.RepetitionUnitID != testRepUnit.ID || set.WeightUnitID != testWtUnit.ID {
			t.Errorf("set %d should inherit the user's default units", i)
		}
		if set.ExerciseID != benchPress.ID {
			t.Errorf("set %d exercise = %s, want %s", i, set.ExerciseID, benchPress.ID)
		}
	}

	// A second group appends at the tail.
	second, err := svc.CreateSetGroup(ctx, testUser, models.DayScope(day.ID), backSquat.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if second.Order != 1 {
		t.Errorf("second group order = %d, want 1", second.Order)
	}
}

func TestCreateSetGroupValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	day := seedDay(t, svc)
	scope := models.DayScope(day.ID)

	var verr *ValidationError
	var nferr *NotFoundError
	var uerr *UnauthorizedError

	if _, err := svc.CreateSetGroup(ctx, testUser, scope, benchPress.ID, 0); !errors.As(err, &verr) {
		t.Errorf("setCount 0: got %v, want ValidationError", err)
	}
	if _, err := svc.CreateSetGroup(ctx, testUser, scope, uuid.New(), 1); !errors.As(err, &nferr) {
		t.Errorf("unknown exercise: got %v, want NotFoundError", err)
	}
	if _, err := svc.CreateSetGroup(ctx, testUser, models.DayScope(uuid.New()), benchPress.ID, 1); !errors.As(err, &nferr) {
		t.Errorf("unknown parent: got %v, want NotFoundError", err)
	}
	if _, err := svc.CreateSetGroup(ctx, testUser, models.Scope{}, benchPress.ID, 1); !errors.As(err, &verr) {
		t.Errorf("empty scope: got %v, want ValidationError", err)
	}
	if _, err := svc.CreateSetGroup(ctx, otherUser, scope, benchPress.ID, 1); !errors.As(err, &uerr) {
		t.Errorf("foreign parent: got %v, want UnauthorizedError", err)
	}
	if _, err := svc.CreateSetGroup(ctx, 0, scope, benchPress.ID, 1); !errors.As(err, &uerr) {
		t.Errorf("absent identity: got %v, want UnauthorizedError", err)
	}
}

func TestCreateSetAppends(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	day := seedDay(t, svc)

	group, err := svc.CreateSetGroup(ctx, testUser, models.DayScope(day.ID), benchPress.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	set, err := svc.CreateSet(ctx, testUser, group.ID, benchPress.ID)
	if err != nil {
		t.Fatalf("create set: %v", err)
	}
	if set.Order != 2 {
		t.Errorf("appended set order = %d, want 2", set.Order)
	}
	assertContiguousSets(t, svc, group.ID, 3)
}

func TestUpdateSetPatchSelectivity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	day := seedDay(t, svc)

	group, err := svc.CreateSetGroup(ctx, testUser, models.DayScope(day.ID), benchPress.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	setID := group.Sets[0].ID

	reps, weight := 8, 80
	if _, err := svc.UpdateSet(ctx, testUser, setID, SetPatch{Reps: &reps, Weight: &weight}); err != nil {
		t.Fatalf("update: %v", err)
	}

	completed := true
	updated, err := svc.UpdateSet(ctx, testUser, setID, SetPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if updated.Reps != 8 || updated.Weight != 80 {
		t.Errorf("patch clobbered untouched fields: reps=%d weight=%d", updated.Reps, updated.Weight)
	}
	if !updated.Completed {
		t.Error("completed not applied")
	}
	if updated.Order != 0 {
		t.Errorf("order changed by patch: %d", updated.Order)
	}
}

func TestUpdateSetValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	day := seedDay(t, svc)
	group, _ := svc.CreateSetGroup(ctx, testUser, models.DayScope(day.ID), benchPress.ID, 1)
	setID := group.Sets[0].ID

	var verr *ValidationError
	bad := models.SetType("SUPERSET")
	if _, err := svc.UpdateSet(ctx, testUser, setID, SetPatch{Type: &bad}); !errors.As(err, &verr) {
		t.Errorf("bad type: got %v, want ValidationError", err)
	}
	negative := -1
	if _, err := svc.UpdateSet(ctx, testUser, setID, SetPatch{Reps: &negative}); !errors.As(err, &verr) {
		t.Errorf("negative reps: got %v, want ValidationError", err)
	}

	var uerr *UnauthorizedError
	if _, err := svc.UpdateSet(ctx, otherUser, setID, SetPatch{}); !errors.As(err, &uerr) {
		t.Errorf("foreign set: got %v, want UnauthorizedError", err)
	}
}

func TestDeleteSetCompactsSiblings(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	day := seedDay(t, svc)

	group, err := svc.CreateSetGroup(ctx, testUser, models.DayScope(day.ID), benchPress.ID, 4)
	if err != nil {
		t.Fatal(err)
	}

	// Remove the second set; the two above it shift down.
	if err := svc.DeleteSet(ctx, testUser, group.Sets[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertContiguousSets(t, svc, group.ID, 3)

	sets, _ := svc.store.ListSets(ctx, group.ID)
	want := []uuid.UUID{group.Sets[0].ID, group.Sets[2].ID, group.Sets[3].ID}
	for i, s := range sets {
		if s.ID != want[i] {
			t.Errorf("position %d = %s, want %s", i, s.ID, want[i])
		}
	}
}

// Deleting group A of [A, B] leaves B at order 0 with its sets untouched.
func TestDeleteSetGroupCompactsAndCascades(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	day := seedDay(t, svc)
	scope := models.DayScope(day.ID)

	groupA, err := svc.CreateSetGroup(ctx, testUser, scope, benchPress.ID, 3)
	if err != nil {
		t.Fatal(err)
	}
	groupB, err := svc.CreateSetGroup(ctx, testUser, scope, backSquat.ID, 3)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteSetGroup(ctx, testUser, groupA.ID); err != nil {
		t.Fatalf("delete group: %v", err)
	}

	assertContiguousGroups(t, svc, scope, 1)
	got, err := svc.store.GetSetGroup(ctx, groupB.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Order != 0 {
		t.Errorf("B order = %d, want 0", got.Order)
	}
	assertContiguousSets(t, svc, groupB.ID, 3)

	// A's sets are gone from the store entirely.
	for _, s := range groupA.Sets {
		if _, ok := store.sets[s.ID]; ok {
			t.Errorf("set %s of deleted group still present", s.ID)
		}
	}
}

func TestOrderContiguityAfterMixedOperations(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	day := seedDay(t, svc)
	scope := models.DayScope(day.ID)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		g, err := svc.CreateSetGroup(ctx, testUser, scope, benchPress.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, g.ID)
	}
	if err := svc.DeleteSetGroup(ctx, testUser, ids[0]); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteSetGroup(ctx, testUser, ids[2]); err != nil {
		t.Fatal(err)
	}
	if err := svc.ReorderSetGroups(ctx, testUser, scope, []uuid.UUID{ids[4], ids[1], ids[3]}); err != nil {
		t.Fatal(err)
	}
	g, err := svc.CreateSetGroup(ctx, testUser, scope, backSquat.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if g.Order != 3 {
		t.Errorf("appended group order = %d, want 3", g.Order)
	}
	assertContiguousGroups(t, svc, scope, 4)
}

func TestUpdateSetGroupComment(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	day := seedDay(t, svc)

	group, _ := svc.CreateSetGroup(ctx, testUser, models.DayScope(day.ID), benchPress.ID, 1)

	comment := "pause at the bottom"
	updated, err := svc.UpdateSetGroupComment(ctx, testUser, group.ID, &comment)
	if err != nil {
		t.Fatalf("set comment: %v", err)
	}
	if updated.Comment == nil || *updated.Comment != comment {
		t.Errorf("comment = %v, want %q", updated.Comment, comment)
	}

	cleared, err := svc.UpdateSetGroupComment(ctx, testUser, group.ID, nil)
	if err != nil {
		t.Fatalf("clear comment: %v", err)
	}
	if cleared.Comment != nil {
		t.Errorf("comment not cleared: %v", *cleared.Comment)
	}
}

func TestDayMutationTouchesRoutine(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	routine, err := svc.CreateRoutine(ctx, testUser, "Upper Lower", nil)
	if err != nil {
		t.Fatal(err)
	}
	day, err := svc.CreateRoutineDay(ctx, testUser, routine.ID, "Upper", []int{2})
	if err != nil {
		t.Fatal(err)
	}
	before := store.routines[routine.ID].UpdatedAt

	if _, err := svc.CreateSetGroup(ctx, testUser, models.DayScope(day.ID), benchPress.ID, 1); err != nil {
		t.Fatal(err)
	}

	after := store.routines[routine.ID].UpdatedAt
	if !after.After(before) {
		t.Errorf("routine updatedAt not bumped: before=%v after=%v", before, after)
	}
	dayAfter := store.days[day.ID].UpdatedAt
	if !dayAfter.After(before) {
		t.Errorf("day updatedAt not bumped: %v", dayAfter)
	}
}
