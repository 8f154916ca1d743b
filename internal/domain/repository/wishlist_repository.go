package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

type WishlistRepository interface {
	// Check if product is in user's wishlist
	IsInWishlist(ctx context.Context, userID, productID string) (bool, error)

	// Upsert the item document. Does not touch the metadata count.
	SaveItem(ctx context.Context, userID string, item *entity.WishlistItem) error

	// Delete the item document. Does not touch the metadata count.
	DeleteItem(ctx context.Context, userID, productID string) error

	// Items ordered newest-added first
	ListItems(ctx context.Context, userID string) ([]*entity.WishlistItem, error)

	// Number of item documents, independent of the metadata count
	CountItems(ctx context.Context, userID string) (int64, error)

	// Delete the given items in one atomic batch
	DeleteItems(ctx context.Context, userID string, productIDs []string) error

	// Merge-write the metadata count by delta and stamp updatedAt
	AdjustCount(ctx context.Context, userID string, delta int64) error

	// Overwrite the metadata count
	SetCount(ctx context.Context, userID string, count int64) error

	// Metadata for user; zero value when it was never written
	GetMetadata(ctx context.Context, userID string) (*entity.WishlistMetadata, error)
}
