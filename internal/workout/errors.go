package workout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidationError reports malformed input: a non-positive set count, invalid
// weekdays, start >= end, or a resequence whose id set does not match the
// current siblings.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference to a record that does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func notFound(kind string, id any) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: fmt.Sprint(id)}
}

// UnauthorizedError reports a missing identity or an access to a record the
// caller does not own.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// StaleReferenceError reports that a resequence or bulk edit targeted a
// sibling that no longer exists; the caller should refetch and retry.
type StaleReferenceError struct {
	Scope string
	ID    uuid.UUID
}

func (e *StaleReferenceError) Error() string {
	return fmt.Sprintf("stale reference in %s: record %s no longer exists", e.Scope, e.ID)
}

// mapStale converts a vanished-record store error during an order write into
// a StaleReferenceError for the caller to refetch and retry on.
func mapStale(err error, scope string, id uuid.UUID) error {
	if errors.Is(err, ErrNotFound) {
		return &StaleReferenceError{Scope: scope, ID: id}
	}
	return err
}

// BulkEditError reports a partially applied bulk edit: the sets listed in
// Failed did not receive the update.
type BulkEditError struct {
	SetGroupID uuid.UUID
	Failed     []uuid.UUID
}

func (e *BulkEditError) Error() string {
	ids := make([]string, len(e.Failed))
	for i, id := range e.Failed {
		ids[i] = id.String()
	}
	return fmt.Sprintf("bulk edit on group %s failed for %d set(s): %s",
		e.SetGroupID, len(e.Failed), strings.Join(ids, ", "))
}
