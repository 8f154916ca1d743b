package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infrastructure/docstore"
	apperrors "storefront/pkg/errors"
	"storefront/pkg/logger"
)

const (
	wishlistsCollection = "wishlists"
	itemsCollection     = "items"
)

type wishlistRepository struct {
	store docstore.Store
}

func NewWishlistRepository(store docstore.Store) repository.WishlistRepository {
	return &wishlistRepository{store: store}
}

func metadataPath(userID string) string {
	return docstore.Join(wishlistsCollection, userID)
}

func itemsPath(userID string) string {
	return docstore.Join(wishlistsCollection, userID, itemsCollection)
}

func itemPath(userID, productID string) string {
	return docstore.Join(wishlistsCollection, userID, itemsCollection, productID)
}

func (r *wishlistRepository) IsInWishlist(ctx context.Context, userID, productID string) (bool, error) {
	_, err := r.store.Get(ctx, itemPath(userID, productID))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.Internal("Failed to check wishlist", err)
	}
	return true, nil
}

func (r *wishlistRepository) SaveItem(ctx context.Context, userID string, item *entity.WishlistItem) error {
	data := map[string]interface{}{
		"productId": item.ProductID,
		"name":      item.Name,
		"price":     item.Price,
		"addedAt":   docstore.ServerTimestamp,
	}
	if item.DiscountPrice != nil {
		data["discountPrice"] = *item.DiscountPrice
	}
	if item.ImageURL != "" {
		data["imageUrl"] = item.ImageURL
	}
	if item.Brand != "" {
		data["brand"] = item.Brand
	}

	if err := r.store.Set(ctx, itemPath(userID, item.ProductID), data, false); err != nil {
		return apperrors.Internal("Failed to add to wishlist", err)
	}

	logger.Debug("Saved wishlist item %s for user %s", item.ProductID, userID)
	return nil
}

func (r *wishlistRepository) DeleteItem(ctx context.Context, userID, productID string) error {
	if err := r.store.Delete(ctx, itemPath(userID, productID)); err != nil {
		return apperrors.Internal("Failed to remove from wishlist", err)
	}

	logger.Debug("Deleted wishlist item %s for user %s", productID, userID)
	return nil
}

func (r *wishlistRepository) ListItems(ctx context.Context, userID string) ([]*entity.WishlistItem, error) {
	docs, err := r.store.List(ctx, itemsPath(userID), "addedAt", docstore.Desc)
	if err != nil {
		return nil, apperrors.Internal("Failed to get wishlist", err)
	}

	items := make([]*entity.WishlistItem, 0, len(docs))
	for _, doc := range docs {
		item, err := itemFromDoc(doc)
		if err != nil {
			return nil, apperrors.Internal("Failed to decode wishlist item", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *wishlistRepository) CountItems(ctx context.Context, userID string) (int64, error) {
	n, err := r.store.Count(ctx, itemsPath(userID))
	if err != nil {
		return 0, apperrors.Internal("Failed to count wishlist items", err)
	}
	return n, nil
}

func (r *wishlistRepository) DeleteItems(ctx context.Context, userID string, productIDs []string) error {
	paths := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		paths = append(paths, itemPath(userID, id))
	}

	if err := r.store.BatchDelete(ctx, paths); err != nil {
		return apperrors.Internal("Failed to clear wishlist", err)
	}
	return nil
}

func (r *wishlistRepository) AdjustCount(ctx context.Context, userID string, delta int64) error {
	err := r.store.Set(ctx, metadataPath(userID), map[string]interface{}{
		"itemCount": docstore.Increment(delta),
		"updatedAt": docstore.ServerTimestamp,
	}, true)
	if err != nil {
		return apperrors.Internal("Failed to update wishlist count", err)
	}
	return nil
}

func (r *wishlistRepository) SetCount(ctx context.Context, userID string, count int64) error {
	err := r.store.Set(ctx, metadataPath(userID), map[string]interface{}{
		"itemCount": count,
		"updatedAt": docstore.ServerTimestamp,
	}, true)
	if err != nil {
		return apperrors.Internal("Failed to reset wishlist count", err)
	}
	return nil
}

func (r *wishlistRepository) GetMetadata(ctx context.Context, userID string) (*entity.WishlistMetadata, error) {
	doc, err := r.store.Get(ctx, metadataPath(userID))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return &entity.WishlistMetadata{}, nil
		}
		return nil, apperrors.Internal("Failed to get wishlist count", err)
	}

	var meta entity.WishlistMetadata
	if err := doc.DataTo(&meta); err != nil {
		return nil, apperrors.Internal("Failed to decode wishlist count", err)
	}
	return &meta, nil
}

func itemFromDoc(doc *docstore.Document) (*entity.WishlistItem, error) {
	var item entity.WishlistItem
	if err := doc.DataTo(&item); err != nil {
		return nil, err
	}
	if item.ProductID == "" {
		item.ProductID = doc.ID
	}
	return &item, nil
}
