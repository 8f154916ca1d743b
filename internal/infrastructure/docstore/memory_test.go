package docstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "wishlists/u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SetReplaceAndMerge(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "wishlists/u1", map[string]interface{}{"a": 1, "b": "x"}, false))
	require.NoError(t, s.Set(ctx, "wishlists/u1", map[string]interface{}{"b": "y"}, true))

	doc, err := s.Get(ctx, "wishlists/u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.Data["a"])
	assert.Equal(t, "y", doc.Data["b"])

	require.NoError(t, s.Set(ctx, "wishlists/u1", map[string]interface{}{"c": true}, false))
	doc, err = s.Get(ctx, "wishlists/u1")
	require.NoError(t, err)
	assert.NotContains(t, doc.Data, "a")
	assert.Equal(t, true, doc.Data["c"])
}

func TestMemoryStore_Sentinels(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(WithClock(fixedClock(start)))

	require.NoError(t, s.Set(ctx, "wishlists/u1", map[string]interface{}{
		"itemCount": Increment(1),
		"updatedAt": ServerTimestamp,
	}, true))
	require.NoError(t, s.Set(ctx, "wishlists/u1", map[string]interface{}{
		"itemCount": Increment(-3),
	}, true))

	doc, err := s.Get(ctx, "wishlists/u1")
	require.NoError(t, err)
	assert.Equal(t, int64(-2), doc.Data["itemCount"])
	assert.Equal(t, start.Add(time.Second), doc.Data["updatedAt"])
}

func TestMemoryStore_ListOrdersAndScopesToCollection(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(WithClock(fixedClock(start)))

	for _, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, s.Set(ctx, "wishlists/u1/items/"+id, map[string]interface{}{"addedAt": ServerTimestamp}, false))
	}
	require.NoError(t, s.Set(ctx, "wishlists/u2/items/p9", map[string]interface{}{"addedAt": ServerTimestamp}, false))
	require.NoError(t, s.Set(ctx, "wishlists/u1/items/no-order-field", map[string]interface{}{"x": 1}, false))

	docs, err := s.List(ctx, "wishlists/u1/items", "addedAt", Desc)
	require.NoError(t, err)

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"p3", "p2", "p1"}, ids)

	all, err := s.List(ctx, "wishlists/u1/items", "", Asc)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMemoryStore_BatchDeleteIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "wishlists/u1/items/p1", map[string]interface{}{"x": 1}, false))

	err := s.BatchDelete(ctx, []string{"wishlists/u1/items/p1", "not-a-doc"})
	require.Error(t, err)

	_, err = s.Get(ctx, "wishlists/u1/items/p1")
	assert.NoError(t, err, "invalid batch must not delete anything")

	require.NoError(t, s.BatchDelete(ctx, []string{"wishlists/u1/items/p1"}))
	_, err = s.Get(ctx, "wishlists/u1/items/p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RejectsBadPaths(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	assert.Error(t, s.Set(ctx, "wishlists", map[string]interface{}{}, false))
	_, err := s.List(ctx, "wishlists/u1", "", Asc)
	assert.Error(t, err)
}

func TestMemoryStore_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemoryStore()
	_, err := s.Get(ctx, "wishlists/u1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDocument_DataToUsesFirestoreTags(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	s := NewMemoryStore(WithClock(func() time.Time { return at }))

	discount := 45.5
	require.NoError(t, s.Set(ctx, "wishlists/u1/items/p1", map[string]interface{}{
		"productId":     "p1",
		"price":         60,
		"discountPrice": &discount,
		"addedAt":       ServerTimestamp,
	}, false))

	var item struct {
		ProductID     string    `firestore:"productId"`
		Price         float64   `firestore:"price"`
		DiscountPrice *float64  `firestore:"discountPrice,omitempty"`
		Brand         string    `firestore:"brand,omitempty"`
		AddedAt       time.Time `firestore:"addedAt"`
	}
	doc, err := s.Get(ctx, "wishlists/u1/items/p1")
	require.NoError(t, err)
	require.NoError(t, doc.DataTo(&item))

	assert.Equal(t, "p1", item.ProductID)
	assert.Equal(t, 60.0, item.Price)
	require.NotNil(t, item.DiscountPrice)
	assert.Equal(t, 45.5, *item.DiscountPrice)
	assert.Empty(t, item.Brand)
	assert.Equal(t, at, item.AddedAt)
}

func TestDocument_DataToRejectsMismatchedTypes(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "orders/o1", map[string]interface{}{"totalAmount": "lots"}, false))

	var order struct {
		TotalAmount float64 `firestore:"totalAmount"`
	}
	doc, err := s.Get(ctx, "orders/o1")
	require.NoError(t, err)
	assert.Error(t, doc.DataTo(&order))
}

func TestMemoryStore_CountAndBatchLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	paths := make([]string, 0, MaxBatchWrites+1)
	for i := 0; i <= MaxBatchWrites; i++ {
		p := fmt.Sprintf("wishlists/u1/items/p%d", i)
		require.NoError(t, s.Set(ctx, p, map[string]interface{}{"n": i}, false))
		paths = append(paths, p)
	}
	require.NoError(t, s.Set(ctx, "wishlists/u1", map[string]interface{}{"itemCount": 1}, false))

	n, err := s.Count(ctx, "wishlists/u1/items")
	require.NoError(t, err)
	assert.Equal(t, int64(MaxBatchWrites+1), n)

	assert.Error(t, s.BatchDelete(ctx, paths))
	n, err = s.Count(ctx, "wishlists/u1/items")
	require.NoError(t, err)
	assert.Equal(t, int64(MaxBatchWrites+1), n, "an oversized batch deletes nothing")

	require.NoError(t, s.BatchDelete(ctx, paths[:MaxBatchWrites]))
	n, err = s.Count(ctx, "wishlists/u1/items")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
