package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/entity"
	"storefront/internal/infrastructure/docstore"
	apperrors "storefront/pkg/errors"
)

func TestWishlistRepository_DocumentLayout(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
	store := docstore.NewMemoryStore(docstore.WithClock(func() time.Time { return now }))
	repo := NewWishlistRepository(store)

	discount := 799.0
	require.NoError(t, repo.SaveItem(ctx, "u1", &entity.WishlistItem{
		ProductID:     "p1",
		Name:          "Saree",
		Price:         999,
		DiscountPrice: &discount,
		Brand:         "Loom",
	}))
	require.NoError(t, repo.AdjustCount(ctx, "u1", 1))

	item, err := store.Get(ctx, "wishlists/u1/items/p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", item.Data["productId"])
	assert.Equal(t, 799.0, item.Data["discountPrice"])
	assert.Equal(t, now, item.Data["addedAt"])
	assert.NotContains(t, item.Data, "imageUrl")

	meta, err := store.Get(ctx, "wishlists/u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Data["itemCount"])
	assert.Equal(t, now, meta.Data["updatedAt"])

	got, err := repo.GetMetadata(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ItemCount)
	assert.Equal(t, now, got.UpdatedAt)

	items, err := repo.ListItems(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].DiscountPrice)
	assert.Equal(t, 799.0, *items[0].DiscountPrice)
	assert.Equal(t, "Loom", items[0].Brand)
}

func TestWishlistRepository_MissingMetadataIsZero(t *testing.T) {
	repo := NewWishlistRepository(docstore.NewMemoryStore())

	meta, err := repo.GetMetadata(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, meta.ItemCount)
	assert.True(t, meta.UpdatedAt.IsZero())

	ok, err := repo.IsInWishlist(context.Background(), "nobody", "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWishlistRepository_SetCountOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewWishlistRepository(docstore.NewMemoryStore())

	require.NoError(t, repo.AdjustCount(ctx, "u1", 3))
	require.NoError(t, repo.SetCount(ctx, "u1", 0))

	meta, err := repo.GetMetadata(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, meta.ItemCount)
}

func TestOrderRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "orders/o1", map[string]interface{}{"totalAmount": 99.99}, false))
	require.NoError(t, store.Set(ctx, "orders/o2", map[string]interface{}{"totalAmount": 250}, false))
	require.NoError(t, store.Set(ctx, "orders/broken", map[string]interface{}{"status": "new"}, false))
	repo := NewOrderRepository(store)

	order, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, 99.99, order.TotalAmount)

	order, err = repo.GetByID(ctx, "o2")
	require.NoError(t, err)
	assert.Equal(t, 250.0, order.TotalAmount)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, apperrors.Is(err, "NOT_FOUND"))

	_, err = repo.GetByID(ctx, "broken")
	assert.True(t, apperrors.Is(err, "INTERNAL_ERROR"))

	require.NoError(t, store.Set(ctx, "orders/garbled", map[string]interface{}{"totalAmount": "lots"}, false))
	_, err = repo.GetByID(ctx, "garbled")
	assert.True(t, apperrors.Is(err, "INTERNAL_ERROR"))
}
