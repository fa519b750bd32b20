package workout

import (
	"github.com/google/uuid"
)

// The ordering engine keeps the order values of a scope's siblings equal to
// the contiguous sequence 0..n-1. Planning is pure; the callers in
// setgroups.go apply the resulting writes through the store.

type sibling struct {
	id    uuid.UUID
	order int
}

type orderWrite struct {
	id    uuid.UUID
	order int
}

// nextOrder returns the next free tail index for a run of siblings.
func nextOrder(siblings []sibling) int { return len(siblings) }

// planResequence computes the minimal order writes that move current into the
// ordering given by desired. desired must contain exactly the current sibling
// ids: a missing, extra, or duplicated id is a contract violation.
func planResequence(current []sibling, desired []uuid.UUID) ([]orderWrite, error) {
	if len(desired) != len(current) {
		return nil, validationf("resequence id set has %d entries, scope has %d siblings",
			len(desired), len(current))
	}

	stored := make(map[uuid.UUID]int, len(current))
	for _, sib := range current {
		stored[sib.id] = sib.order
	}

	seen := make(map[uuid.UUID]bool, len(desired))
	var writes []orderWrite
	for index, id := range desired {
		if seen[id] {
			return nil, validationf("resequence id set contains %s twice", id)
		}
		seen[id] = true
		order, ok := stored[id]
		if !ok {
			return nil, validationf("resequence id %s is not a sibling of this scope", id)
		}
		if order != index {
			writes = append(writes, orderWrite{id: id, order: index})
		}
	}
	return writes, nil
}

// planCompaction computes the writes that close the gap left by removing the
// sibling at removedOrder: everything above it shifts down by one.
func planCompaction(current []sibling, removedOrder int) []orderWrite {
	var writes []orderWrite
	for _, sib := range current {
		if sib.order > removedOrder {
			writes = append(writes, orderWrite{id: sib.id, order: sib.order - 1})
		}
	}
	return writes
}
