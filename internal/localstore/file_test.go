package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	newStore := func(t *testing.T) Store {
		s, err := NewFileStore(t.TempDir(), "sess-1")
		assert.NoError(t, err)
		return s
	}

	t.Run("Set and Get", func(t *testing.T) {
		s := newStore(t)

		assert.NoError(t, s.Set(ctx, KeyToken, "abc123"))

		v, err := s.Get(ctx, KeyToken)
		assert.NoError(t, err)
		assert.Equal(t, "abc123", v)
	})

	t.Run("Get missing key", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Get(ctx, KeyRole)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)

		assert.NoError(t, s.Set(ctx, KeyRole, "admin"))
		assert.NoError(t, s.Delete(ctx, KeyRole))

		_, err := s.Get(ctx, KeyRole)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Clear removes everything", func(t *testing.T) {
		s := newStore(t)

		assert.NoError(t, s.Set(ctx, KeyToken, "t"))
		assert.NoError(t, s.Set(ctx, KeyUser, `{"name":"Jane"}`))
		assert.NoError(t, s.Clear(ctx))

		_, err := s.Get(ctx, KeyToken)
		assert.ErrorIs(t, err, ErrKeyNotFound)
		_, err = s.Get(ctx, KeyUser)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Clear on empty store is a no-op", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Clear(ctx))
	})

	t.Run("Values survive a reopen", func(t *testing.T) {
		dir := t.TempDir()
		s1, err := NewFileStore(dir, "sess-2")
		assert.NoError(t, err)
		assert.NoError(t, s1.Set(ctx, KeyOrderID, "ord-77"))

		s2, err := NewFileStore(dir, "sess-2")
		assert.NoError(t, err)
		v, err := s2.Get(ctx, KeyOrderID)
		assert.NoError(t, err)
		assert.Equal(t, "ord-77", v)
	})

	t.Run("Empty namespace rejected", func(t *testing.T) {
		_, err := NewFileStore(t.TempDir(), "")
		assert.Error(t, err)
	})
}
