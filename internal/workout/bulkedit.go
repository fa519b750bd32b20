package workout

import (
	"context"
	"errors"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// BulkEditSets applies the same partial update to every set in a group. Nil
// patch fields leave the per-set values untouched. Per-record failures are
// collected and surfaced as a BulkEditError rather than swallowed; sets not
// listed in the error were updated.
func (s *Service) BulkEditSets(ctx context.Context, userID int, setGroupID uuid.UUID, patch SetPatch) ([]models.Set, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}
	group, err := s.getOwnedSetGroup(ctx, userID, setGroupID)
	if err != nil {
		return nil, err
	}

	sets, err := s.store.ListSets(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var failed []uuid.UUID
	updated := make([]models.Set, 0, len(sets))
	for _, set := range sets {
		patch.apply(&set)
		set.UpdatedAt = now
		if err := s.store.UpdateSet(ctx, set); err != nil {
			if !errors.Is(err, ErrNotFound) {
				s.log.Error("bulk edit set update", "set_id", set.ID, "error", err)
			}
			failed = append(failed, set.ID)
			continue
		}
		updated = append(updated, set)
	}

	s.touchScope(ctx, group.Scope())
	if len(failed) > 0 {
		return updated, &BulkEditError{SetGroupID: group.ID, Failed: failed}
	}
	return updated, nil
}
