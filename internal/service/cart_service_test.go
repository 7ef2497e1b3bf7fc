package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository/memory"
)

func TestCartService(t *testing.T) {
	ctx := context.Background()
	const userID int64 = 1

	t.Run("add upserts the entry", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewCartService(store, store, zap.NewNop())
		p := seedProduct(t, store, "Widget", 10, 5, 1)

		require.NoError(t, svc.Add(ctx, userID, p.ID))
		require.NoError(t, svc.Add(ctx, userID, p.ID))

		lines, err := svc.Lines(ctx, userID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, p.ID, lines[0].ProductID)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.Equal(t, "Widget", lines[0].Name)
		assert.Equal(t, 10.0, lines[0].Price)
	})

	t.Run("add rejects unknown products", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewCartService(store, store, zap.NewNop())

		err := svc.Add(ctx, userID, 42)
		require.ErrorIs(t, err, ErrProductNotFound)

		lines, err := svc.Lines(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("update applies a signed delta", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewCartService(store, store, zap.NewNop())
		p := seedProduct(t, store, "Widget", 10, 5, 1)

		require.NoError(t, svc.Add(ctx, userID, p.ID))
		require.NoError(t, svc.UpdateQuantity(ctx, userID, p.ID, 3))

		lines, err := svc.Lines(ctx, userID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 4, lines[0].Quantity)
	})

	t.Run("update removes entries that drop to zero or below", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewCartService(store, store, zap.NewNop())
		p := seedProduct(t, store, "Widget", 10, 5, 1)

		require.NoError(t, svc.Add(ctx, userID, p.ID))
		require.NoError(t, svc.Add(ctx, userID, p.ID))
		require.NoError(t, svc.UpdateQuantity(ctx, userID, p.ID, -5))

		lines, err := svc.Lines(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("update rejects a zero delta", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewCartService(store, store, zap.NewNop())

		err := svc.UpdateQuantity(ctx, userID, 1, 0)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("remove deletes the entry unconditionally", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewCartService(store, store, zap.NewNop())
		p := seedProduct(t, store, "Widget", 10, 5, 1)
		other := seedProduct(t, store, "Other", 5, 5, 1)

		require.NoError(t, svc.Add(ctx, userID, p.ID))
		require.NoError(t, svc.Add(ctx, userID, other.ID))
		require.NoError(t, svc.Remove(ctx, userID, p.ID))

		lines, err := svc.Lines(ctx, userID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, other.ID, lines[0].ProductID)
	})

	t.Run("carts are per user", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewCartService(store, store, zap.NewNop())
		p := seedProduct(t, store, "Widget", 10, 5, 1)

		require.NoError(t, svc.Add(ctx, 1, p.ID))

		lines, err := svc.Lines(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}
