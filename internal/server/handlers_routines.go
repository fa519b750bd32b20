package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/workout"
	"github.com/google/uuid"
)

func (s *Server) handleListRoutines(w http.ResponseWriter, r *http.Request) {
	routines, err := s.svc.ListRoutines(r.Context(), userID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routines)
}

func (s *Server) handleCreateRoutine(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name        string  `json:"name"`
		Description *string `json:"description,omitempty"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	routine, err := s.svc.CreateRoutine(r.Context(), userID(r), in.Name, in.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, routine)
}

func (s *Server) handleGetRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	routine, err := s.svc.GetRoutine(r.Context(), userID(r), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (s *Server) handleUpdateRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in workout.UpdateRoutineInput
	if !decodeJSON(w, r, &in) {
		return
	}
	routine, err := s.svc.UpdateRoutine(r.Context(), userID(r), id, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (s *Server) handleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteRoutine(r.Context(), userID(r), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateRoutineDay(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RoutineID   uuid.UUID `json:"routine_id"`
		Description string    `json:"description"`
		Weekdays    []int     `json:"weekdays"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	day, err := s.svc.CreateRoutineDay(r.Context(), userID(r), in.RoutineID, in.Description, in.Weekdays)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, day)
}

func (s *Server) handleGetRoutineDay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	day, err := s.svc.GetRoutineDay(r.Context(), userID(r), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleUpdateRoutineDay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in workout.UpdateRoutineDayInput
	if !decodeJSON(w, r, &in) {
		return
	}
	day, err := s.svc.UpdateRoutineDay(r.Context(), userID(r), id, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleDeleteRoutineDay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteRoutineDay(r.Context(), userID(r), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
