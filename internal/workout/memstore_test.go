package workout

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// memStore is an in-memory Store for exercising the service without a
// database. Order-write and set-update failures can be injected to simulate
// records vanishing under concurrent edits.
type memStore struct {
	users     map[int]models.User
	routines  map[uuid.UUID]models.Routine
	days      map[uuid.UUID]models.RoutineDay
	sessions  map[uuid.UUID]models.WorkoutSession
	groups    map[uuid.UUID]models.SetGroup
	sets      map[uuid.UUID]models.Set
	exercises map[uuid.UUID]models.Exercise
	repUnits  []models.RepetitionUnit
	wtUnits   []models.WeightUnit

	failOrderWrites map[uuid.UUID]bool
	failSetUpdates  map[uuid.UUID]bool
}

func newMemStore() *memStore {
	return &memStore{
		users:           make(map[int]models.User),
		routines:        make(map[uuid.UUID]models.Routine),
		days:            make(map[uuid.UUID]models.RoutineDay),
		sessions:        make(map[uuid.UUID]models.WorkoutSession),
		groups:          make(map[uuid.UUID]models.SetGroup),
		sets:            make(map[uuid.UUID]models.Set),
		exercises:       make(map[uuid.UUID]models.Exercise),
		failOrderWrites: make(map[uuid.UUID]bool),
		failSetUpdates:  make(map[uuid.UUID]bool),
	}
}

func (m *memStore) GetUser(_ context.Context, id int) (models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (m *memStore) CreateRoutine(_ context.Context, r models.Routine) error {
	r.Days = nil
	m.routines[r.ID] = r
	return nil
}

func (m *memStore) GetRoutine(_ context.Context, id uuid.UUID) (models.Routine, error) {
	r, ok := m.routines[id]
	if !ok {
		return models.Routine{}, ErrNotFound
	}
	return r, nil
}

func (m *memStore) ListRoutines(_ context.Context, userID int) ([]models.Routine, error) {
	var out []models.Routine
	for _, r := range m.routines {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memStore) UpdateRoutine(_ context.Context, r models.Routine) error {
	if _, ok := m.routines[r.ID]; !ok {
		return ErrNotFound
	}
	r.Days = nil
	m.routines[r.ID] = r
	return nil
}

func (m *memStore) DeleteRoutine(_ context.Context, id uuid.UUID) error {
	if _, ok := m.routines[id]; !ok {
		return ErrNotFound
	}
	delete(m.routines, id)
	return nil
}

func (m *memStore) CreateRoutineDay(_ context.Context, d models.RoutineDay) error {
	d.SetGroups = nil
	m.days[d.ID] = d
	return nil
}

func (m *memStore) GetRoutineDay(_ context.Context, id uuid.UUID) (models.RoutineDay, error) {
	d, ok := m.days[id]
	if !ok {
		return models.RoutineDay{}, ErrNotFound
	}
	return d, nil
}

func (m *memStore) ListRoutineDays(_ context.Context, routineID uuid.UUID) ([]models.RoutineDay, error) {
	var out []models.RoutineDay
	for _, d := range m.days {
		if d.RoutineID == routineID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}

func (m *memStore) UpdateRoutineDay(_ context.Context, d models.RoutineDay) error {
	if _, ok := m.days[d.ID]; !ok {
		return ErrNotFound
	}
	d.SetGroups = nil
	m.days[d.ID] = d
	return nil
}

func (m *memStore) DeleteRoutineDay(_ context.Context, id uuid.UUID) error {
	if _, ok := m.days[id]; !ok {
		return ErrNotFound
	}
	delete(m.days, id)
	return nil
}

func (m *memStore) CreateSession(_ context.Context, s models.WorkoutSession) error {
	s.SetGroups = nil
	m.sessions[s.ID] = s
	return nil
}

func (m *memStore) GetSession(_ context.Context, id uuid.UUID) (models.WorkoutSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return models.WorkoutSession{}, ErrNotFound
	}
	return s, nil
}

func (m *memStore) ListSessions(_ context.Context, userID int) ([]models.WorkoutSession, error) {
	var out []models.WorkoutSession
	for _, s := range m.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (m *memStore) ListOpenSessions(_ context.Context, userID int) ([]models.WorkoutSession, error) {
	var out []models.WorkoutSession
	for _, s := range m.sessions {
		if s.UserID == userID && s.EndTime == nil {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (m *memStore) UpdateSession(_ context.Context, s models.WorkoutSession) error {
	if _, ok := m.sessions[s.ID]; !ok {
		return ErrNotFound
	}
	s.SetGroups = nil
	m.sessions[s.ID] = s
	return nil
}

func (m *memStore) DeleteSession(_ context.Context, id uuid.UUID) error {
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func sameScope(g models.SetGroup, scope models.Scope) bool {
	if scope.RoutineDayID != nil {
		return g.RoutineDayID != nil && *g.RoutineDayID == *scope.RoutineDayID
	}
	return g.SessionID != nil && *g.SessionID == *scope.SessionID
}

func (m *memStore) CreateSetGroup(_ context.Context, g models.SetGroup) error {
	g.Sets = nil
	m.groups[g.ID] = g
	return nil
}

func (m *memStore) GetSetGroup(_ context.Context, id uuid.UUID) (models.SetGroup, error) {
	g, ok := m.groups[id]
	if !ok {
		return models.SetGroup{}, ErrNotFound
	}
	return g, nil
}

func (m *memStore) ListSetGroups(_ context.Context, scope models.Scope) ([]models.SetGroup, error) {
	var out []models.SetGroup
	for _, g := range m.groups {
		if sameScope(g, scope) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memStore) UpdateSetGroupOrder(_ context.Context, id uuid.UUID, order int) error {
	if m.failOrderWrites[id] {
		// Simulates the record vanishing under a concurrent delete.
		delete(m.groups, id)
		return ErrNotFound
	}
	g, ok := m.groups[id]
	if !ok {
		return ErrNotFound
	}
	g.Order = order
	m.groups[id] = g
	return nil
}

func (m *memStore) UpdateSetGroupComment(_ context.Context, id uuid.UUID, comment *string) error {
	g, ok := m.groups[id]
	if !ok {
		return ErrNotFound
	}
	g.Comment = comment
	m.groups[id] = g
	return nil
}

func (m *memStore) DeleteSetGroup(_ context.Context, id uuid.UUID) error {
	if _, ok := m.groups[id]; !ok {
		return ErrNotFound
	}
	delete(m.groups, id)
	return nil
}

func (m *memStore) CreateSet(_ context.Context, s models.Set) error {
	m.sets[s.ID] = s
	return nil
}

func (m *memStore) GetSet(_ context.Context, id uuid.UUID) (models.Set, error) {
	s, ok := m.sets[id]
	if !ok {
		return models.Set{}, ErrNotFound
	}
	return s, nil
}

func (m *memStore) ListSets(_ context.Context, setGroupID uuid.UUID) ([]models.Set, error) {
	var out []models.Set
	for _, s := range m.sets {
		if s.SetGroupID == setGroupID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memStore) UpdateSet(_ context.Context, s models.Set) error {
	if m.failSetUpdates[s.ID] {
		return ErrNotFound
	}
	if _, ok := m.sets[s.ID]; !ok {
		return ErrNotFound
	}
	m.sets[s.ID] = s
	return nil
}

func (m *memStore) UpdateSetOrder(_ context.Context, id uuid.UUID, order int) error {
	if m.failOrderWrites[id] {
		delete(m.sets, id)
		return ErrNotFound
	}
	s, ok := m.sets[id]
	if !ok {
		return ErrNotFound
	}
	s.Order = order
	m.sets[id] = s
	return nil
}

func (m *memStore) DeleteSet(_ context.Context, id uuid.UUID) error {
	if _, ok := m.sets[id]; !ok {
		return ErrNotFound
	}
	delete(m.sets, id)
	return nil
}

func (m *memStore) GetExercise(_ context.Context, id uuid.UUID) (models.Exercise, error) {
	e, ok := m.exercises[id]
	if !ok {
		return models.Exercise{}, ErrNotFound
	}
	return e, nil
}

func (m *memStore) ListRepetitionUnits(_ context.Context) ([]models.RepetitionUnit, error) {
	return m.repUnits, nil
}

func (m *memStore) ListWeightUnits(_ context.Context) ([]models.WeightUnit, error) {
	return m.wtUnits, nil
}

var _ Store = (*memStore)(nil)

// Fixture ids shared by the package tests.
const (
	testUser  = 1
	otherUser = 2
)

var (
	testRepUnit  = models.RepetitionUnit{ID: uuid.New(), Name: "Repetitions"}
	testWtUnit   = models.WeightUnit{ID: uuid.New(), Name: "kg"}
	benchPress   = models.Exercise{ID: uuid.New(), Name: "Bench Press"}
	backSquat    = models.Exercise{ID: uuid.New(), Name: "Back Squat"}
	testBaseTime = time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC)
)

// newTestService returns a service over a fresh memStore seeded with two
// users, the unit catalogs, and two exercises. The clock starts at
// testBaseTime and advances one second per reading.
func newTestService() (*Service, *memStore) {
	store := newMemStore()
	store.repUnits = []models.RepetitionUnit{testRepUnit}
	store.wtUnits = []models.WeightUnit{testWtUnit}
	store.exercises[benchPress.ID] = benchPress
	store.exercises[backSquat.ID] = backSquat
	store.users[testUser] = models.User{
		ID:                      testUser,
		Login:                   "lifter",
		DefaultRepetitionUnitID: testRepUnit.ID,
		DefaultWeightUnitID:     testWtUnit.ID,
	}
	store.users[otherUser] = models.User{
		ID:                      otherUser,
		Login:                   "intruder",
		DefaultRepetitionUnitID: testRepUnit.ID,
		DefaultWeightUnitID:     testWtUnit.ID,
	}

	svc := NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	tick := 0
	svc.now = func() time.Time {
		tick++
		return testBaseTime.Add(time.Duration(tick) * time.Second)
	}
	return svc, store
}
