package listing

import (
	"context"
	"fmt"
	"testing"

	"blushmart-web/internal/catalog"
	"blushmart-web/internal/localstore"

	"github.com/stretchr/testify/assert"
)

func TestRecentlyViewed(t *testing.T) {
	ctx := context.Background()

	newLocal := func(t *testing.T) localstore.Store {
		s, err := localstore.NewFileStore(t.TempDir(), "recent")
		assert.NoError(t, err)
		return s
	}

	t.Run("Most recent first", func(t *testing.T) {
		r := NewRecentlyViewed(ctx, newLocal(t))

		r.Record(ctx, catalog.Product{ID: "p1", Name: "Serum"})
		r.Record(ctx, catalog.Product{ID: "p2", Name: "Toner"})
		r.Record(ctx, catalog.Product{ID: "p3", Name: "Mask"})

		assert.Equal(t, []string{"p3", "p2", "p1"}, ids(r.Items()))
	})

	t.Run("Duplicate moves to front", func(t *testing.T) {
		r := NewRecentlyViewed(ctx, newLocal(t))

		r.Record(ctx, catalog.Product{ID: "p1"})
		r.Record(ctx, catalog.Product{ID: "p2"})
		r.Record(ctx, catalog.Product{ID: "p1"})

		items := r.Items()
		assert.Len(t, items, 2)
		assert.Equal(t, []string{"p1", "p2"}, ids(items))
	})

	t.Run("Capped at five, oldest evicted", func(t *testing.T) {
		r := NewRecentlyViewed(ctx, newLocal(t))

		for i := 1; i <= 7; i++ {
			r.Record(ctx, catalog.Product{ID: fmt.Sprintf("p%d", i)})
		}

		items := r.Items()
		assert.Len(t, items, 5)
		assert.Equal(t, []string{"p7", "p6", "p5", "p4", "p3"}, ids(items))
	})

	t.Run("Persists across restores", func(t *testing.T) {
		local := newLocal(t)
		first := NewRecentlyViewed(ctx, local)
		first.Record(ctx, catalog.Product{ID: "p1", Name: "Serum"})
		first.Record(ctx, catalog.Product{ID: "p2", Name: "Toner"})

		restored := NewRecentlyViewed(ctx, local)
		items := restored.Items()
		assert.Equal(t, []string{"p2", "p1"}, ids(items))
		assert.Equal(t, "Toner", items[0].Name)
	})

	t.Run("Corrupt record discarded", func(t *testing.T) {
		local := newLocal(t)
		assert.NoError(t, local.Set(ctx, localstore.KeyRecentlyViewed, "{broken"))

		r := NewRecentlyViewed(ctx, local)
		assert.Empty(t, r.Items())
	})

	t.Run("Product without id ignored", func(t *testing.T) {
		r := NewRecentlyViewed(ctx, newLocal(t))
		r.Record(ctx, catalog.Product{Name: "anonymous"})
		assert.Empty(t, r.Items())
	})
}
