package planner

import "github.com/google/uuid"

// Reconcile compares a recipe's current category ids with the desired ids and returns
// the ids to detach (current minus desired) and to attach (desired minus current).
// Order follows the inputs. Reconciling again after applying the result yields two
// empty slices.
func Reconcile(current, desired []uuid.UUID) (remove, add []uuid.UUID) {
	want := toSet(desired)
	have := toSet(current)

	remove = []uuid.UUID{}
	for _, id := range uniqueIDs(current) {
		if _, ok := want[id]; !ok {
			remove = append(remove, id)
		}
	}

	add = []uuid.UUID{}
	for _, id := range uniqueIDs(desired) {
		if _, ok := have[id]; !ok {
			add = append(add, id)
		}
	}
	return remove, add
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
