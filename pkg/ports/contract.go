package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabulist/fabula/pkg/domain"
	"github.com/fabulist/fabula/pkg/expr"
)

// RunSessionStoreContract runs a suite of tests to verify that a
// SessionStore implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := domain.NewSnapshot("intro", expr.Env{
			"coins": expr.Number(8),
			"name":  expr.String("Ada"),
			"done":  expr.Bool(false),
		})

		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "intro", loaded.Branch)
		assert.Equal(t, expr.Number(8), loaded.Vars.Get("coins"))
		assert.Equal(t, expr.String("Ada"), loaded.Vars.Get("name"))
		assert.Equal(t, expr.Bool(false), loaded.Vars.Get("done"))
	})

	t.Run("Load is isolated from later mutation", func(t *testing.T) {
		snap := domain.NewSnapshot("intro", expr.Env{"coins": expr.Number(1)})
		require.NoError(t, store.Save(ctx, sessionID, snap))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Vars.Set("coins", expr.Number(99))

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, expr.Number(1), again.Vars.Get("coins"), "mutating a loaded snapshot must not affect the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewSnapshot("intro", expr.Env{})))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSnapshot("intro", expr.Env{}))
		_ = store.Save(ctx, id2, domain.NewSnapshot("intro", expr.Env{}))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
