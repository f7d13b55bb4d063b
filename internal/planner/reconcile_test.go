package planner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	t.Run("delta", func(t *testing.T) {
		remove, add := Reconcile([]uuid.UUID{a, b}, []uuid.UUID{b, c})
		assert.Equal(t, []uuid.UUID{a}, remove)
		assert.Equal(t, []uuid.UUID{c}, add)
	})

	t.Run("unchanged", func(t *testing.T) {
		remove, add := Reconcile([]uuid.UUID{a, b}, []uuid.UUID{b, a})
		assert.Empty(t, remove)
		assert.Empty(t, add)
	})

	t.Run("clear all", func(t *testing.T) {
		remove, add := Reconcile([]uuid.UUID{a, b}, nil)
		assert.Equal(t, []uuid.UUID{a, b}, remove)
		assert.Empty(t, add)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		remove, add := Reconcile(nil, []uuid.UUID{c, c, a})
		assert.Empty(t, remove)
		assert.Equal(t, []uuid.UUID{c, a}, add)
	})
}

func TestReconcileIsIdempotent(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	current := []uuid.UUID{a, b, c}
	desired := []uuid.UUID{c, d}

	remove, add := Reconcile(current, desired)

	applied := []uuid.UUID{}
	removed := toSet(remove)
	for _, id := range current {
		if _, ok := removed[id]; !ok {
			applied = append(applied, id)
		}
	}
	applied = append(applied, add...)

	remove, add = Reconcile(applied, desired)
	assert.Empty(t, remove)
	assert.Empty(t, add)
}
