package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/liftlog/internal/workout"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.Me(r.Context(), userID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	repUnits, weightUnits, err := s.svc.Units(r.Context(), userID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"repetition_units": repUnits,
		"weight_units":     weightUnits,
	})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	result, err := s.importer.Ingest(r.Context(), r.Body, userID(r))
	if err != nil {
		s.log.Error("import error", "error", err)
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeError translates service errors into HTTP responses. Unknown errors
// are logged and reported as a plain 500 without leaking internals.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		validation   *workout.ValidationError
		notFound     *workout.NotFoundError
		unauthorized *workout.UnauthorizedError
		stale        *workout.StaleReferenceError
		bulk         *workout.BulkEditError
	)
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validation.Error()})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": notFound.Error()})
	case errors.As(err, &unauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": unauthorized.Error()})
	case errors.As(err, &stale):
		writeJSON(w, http.StatusConflict, map[string]string{"error": stale.Error()})
	case errors.As(err, &bulk):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":        bulk.Error(),
			"set_group_id": bulk.SetGroupID,
			"failed":       bulk.Failed,
		})
	default:
		s.log.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into v, returning false after writing a
// 400 when the body does not parse.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

// pathID parses the {id} URL parameter, returning false after writing a 400
// when it is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
