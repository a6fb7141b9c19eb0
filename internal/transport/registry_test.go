package transport

import (
	"context"
	"testing"
	"time"

	"blushmart-web/internal/api"
	"blushmart-web/internal/localstore"
	"blushmart-web/internal/logger"
	"blushmart-web/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	dir := t.TempDir()
	return NewRegistry(api.NewClient("http://backend.invalid", 0), func(namespace string) (localstore.Store, error) {
		return localstore.NewFileStore(dir, namespace)
	})
}

func TestRegistry_Resolve(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := logger.WithSessionID(context.Background(), "sess-1")

	b1, err := reg.Resolve(ctx)
	require.NoError(t, err)

	t.Run("Caches per session", func(t *testing.T) {
		b2, err := reg.Resolve(ctx)
		require.NoError(t, err)
		assert.Same(t, b1, b2)
	})

	t.Run("Separate sessions separate bundles", func(t *testing.T) {
		other, err := reg.Resolve(logger.WithSessionID(context.Background(), "sess-2"))
		require.NoError(t, err)
		assert.NotSame(t, b1, other)
	})

	t.Run("Drop forgets, next resolve rebuilds", func(t *testing.T) {
		reg.Drop("sess-1")
		rebuilt, err := reg.Resolve(ctx)
		require.NoError(t, err)
		assert.NotSame(t, b1, rebuilt)
	})
}

func TestRegistry_EvictIdle(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := logger.WithSessionID(context.Background(), "sess-idle")

	b, err := reg.Resolve(ctx)
	require.NoError(t, err)
	require.NoError(t, b.Session.Login(ctx, "tok-1", session.RoleCustomer, "u-1", session.User{ID: "u-1"}))

	t.Run("Fresh bundle survives", func(t *testing.T) {
		assert.Equal(t, 0, reg.evictIdle(bundleIdleTTL))
	})

	t.Run("Idle bundle is swept", func(t *testing.T) {
		reg.mu.Lock()
		reg.bundles["sess-idle"].lastSeen = time.Now().Add(-time.Hour)
		reg.mu.Unlock()

		assert.Equal(t, 1, reg.evictIdle(bundleIdleTTL))
	})

	t.Run("Evicted state restores from the namespace", func(t *testing.T) {
		rebuilt, err := reg.Resolve(ctx)
		require.NoError(t, err)
		assert.NotSame(t, b, rebuilt)
		assert.True(t, rebuilt.Session.Authenticated())
		assert.Equal(t, "u-1", rebuilt.Session.UserID())
	})
}
