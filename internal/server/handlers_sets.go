package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/workout"
	"github.com/google/uuid"
)

func (s *Server) handleCreateSetGroup(w http.ResponseWriter, r *http.Request) {
	var in struct {
		models.Scope
		ExerciseID uuid.UUID `json:"exercise_id"`
		SetCount   int       `json:"set_count"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	group, err := s.svc.CreateSetGroup(r.Context(), userID(r), in.Scope, in.ExerciseID, in.SetCount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleReorderSetGroups(w http.ResponseWriter, r *http.Request) {
	var in struct {
		models.Scope
		OrderedIDs []uuid.UUID `json:"ordered_ids"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := s.svc.ReorderSetGroups(r.Context(), userID(r), in.Scope, in.OrderedIDs); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetGroupComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in struct {
		Comment *string `json:"comment"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	group, err := s.svc.UpdateSetGroupComment(r.Context(), userID(r), id, in.Comment)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleBulkEditSets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch workout.SetPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	sets, err := s.svc.BulkEditSets(r.Context(), userID(r), id, patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

func (s *Server) handleDeleteSetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteSetGroup(r.Context(), userID(r), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateSet(w http.ResponseWriter, r *http.Request) {
	var in struct {
		SetGroupID uuid.UUID `json:"set_group_id"`
		ExerciseID uuid.UUID `json:"exercise_id"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	set, err := s.svc.CreateSet(r.Context(), userID(r), in.SetGroupID, in.ExerciseID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleReorderSets(w http.ResponseWriter, r *http.Request) {
	var in struct {
		SetGroupID uuid.UUID   `json:"set_group_id"`
		OrderedIDs []uuid.UUID `json:"ordered_ids"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := s.svc.ReorderSets(r.Context(), userID(r), in.SetGroupID, in.OrderedIDs); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch workout.SetPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	set, err := s.svc.UpdateSet(r.Context(), userID(r), id, patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteSet(r.Context(), userID(r), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
