package usecase

import (
	"context"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

// WishlistUseCase manages a user's wishlist and its denormalized count.
//
// Every mutation is two independent writes: the item document first, then the
// metadata count. They are not transactional, so a failure between them or
// two interleaved calls for the same user leave ItemCount out of step with
// the items. Reconcile repairs the count on demand.
// MaxWishlistItems bounds a wishlist so Clear fits in one delete batch.
const MaxWishlistItems = 500

type WishlistUseCase struct {
	wishlistRepo repository.WishlistRepository
}

func NewWishlistUseCase(wishlistRepo repository.WishlistRepository) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
	}
}

type AddWishlistItemInput struct {
	ProductID     string   `json:"product_id" validate:"required,max=128"`
	Name          string   `json:"name" validate:"required,max=256"`
	Price         float64  `json:"price" validate:"gte=0"`
	DiscountPrice *float64 `json:"discount_price,omitempty" validate:"omitempty,gte=0"`
	ImageURL      string   `json:"image_url,omitempty" validate:"omitempty,url"`
	Brand         string   `json:"brand,omitempty" validate:"omitempty,max=128"`
}

// GetStatus reports whether productID is in the wishlist. A failed read is
// logged and reported as false.
func (u *WishlistUseCase) GetStatus(ctx context.Context, userID, productID string) bool {
	if err := validateIDs(userID, productID); err != nil {
		return false
	}

	exists, err := u.wishlistRepo.IsInWishlist(ctx, userID, productID)
	if err != nil {
		logger.Warn("Wishlist status check failed for user %s, product %s: %v", userID, productID, err)
		return false
	}
	return exists
}

// Add upserts the item and then increments the count. Adding the same
// product twice increments twice. A new product is refused once the wishlist
// holds MaxWishlistItems items.
func (u *WishlistUseCase) Add(ctx context.Context, userID string, input AddWishlistItemInput) (*entity.WishlistItem, error) {
	if err := validateIDs(userID, input.ProductID); err != nil {
		return nil, err
	}
	logger.Info("Adding product %s to wishlist for user %s", input.ProductID, userID)

	if u.isFull(ctx, userID, input.ProductID) {
		return nil, errors.BadRequest("Wishlist is full, remove an item before adding another", nil)
	}

	item := &entity.WishlistItem{
		ProductID:     input.ProductID,
		Name:          input.Name,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		ImageURL:      input.ImageURL,
		Brand:         input.Brand,
	}

	if err := u.wishlistRepo.SaveItem(ctx, userID, item); err != nil {
		return nil, err
	}

	if err := u.wishlistRepo.AdjustCount(ctx, userID, 1); err != nil {
		logger.Error("Wishlist count increment failed after saving %s for user %s: %v", input.ProductID, userID, err)
		return nil, err
	}

	return item, nil
}

// isFull counts item documents rather than trusting the drifting metadata
// count. Read failures do not block the add.
func (u *WishlistUseCase) isFull(ctx context.Context, userID, productID string) bool {
	n, err := u.wishlistRepo.CountItems(ctx, userID)
	if err != nil {
		logger.Warn("Wishlist size check failed for user %s: %v", userID, err)
		return false
	}
	if n < MaxWishlistItems {
		return false
	}

	exists, err := u.wishlistRepo.IsInWishlist(ctx, userID, productID)
	if err != nil {
		logger.Warn("Wishlist status check failed for user %s, product %s: %v", userID, productID, err)
		return false
	}
	return !exists
}

// Remove deletes the item and then decrements the count. The decrement runs
// even when the item was already absent.
func (u *WishlistUseCase) Remove(ctx context.Context, userID, productID string) error {
	if err := validateIDs(userID, productID); err != nil {
		return err
	}
	logger.Info("Removing product %s from wishlist for user %s", productID, userID)

	if err := u.wishlistRepo.DeleteItem(ctx, userID, productID); err != nil {
		return err
	}

	if err := u.wishlistRepo.AdjustCount(ctx, userID, -1); err != nil {
		logger.Error("Wishlist count decrement failed after removing %s for user %s: %v", productID, userID, err)
		return err
	}

	return nil
}

// List returns items newest first. A failed read is logged and reported as
// an empty wishlist.
func (u *WishlistUseCase) List(ctx context.Context, userID string) []*entity.WishlistItem {
	if err := validateIDs(userID); err != nil {
		return []*entity.WishlistItem{}
	}

	items, err := u.wishlistRepo.ListItems(ctx, userID)
	if err != nil {
		logger.Warn("Wishlist list failed for user %s: %v", userID, err)
		return []*entity.WishlistItem{}
	}
	return items
}

// Clear deletes every item in one atomic batch, then resets the count to 0
// in a separate write.
func (u *WishlistUseCase) Clear(ctx context.Context, userID string) error {
	if err := validateIDs(userID); err != nil {
		return err
	}
	logger.Info("Clearing wishlist for user %s", userID)

	items, err := u.wishlistRepo.ListItems(ctx, userID)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	if len(ids) > 0 {
		if err := u.wishlistRepo.DeleteItems(ctx, userID, ids); err != nil {
			return err
		}
	}

	if err := u.wishlistRepo.SetCount(ctx, userID, 0); err != nil {
		logger.Error("Wishlist count reset failed after clearing %d items for user %s: %v", len(ids), userID, err)
		return err
	}

	return nil
}

// Count returns the stored metadata as is, without recounting items.
func (u *WishlistUseCase) Count(ctx context.Context, userID string) (*entity.WishlistMetadata, error) {
	if err := validateIDs(userID); err != nil {
		return nil, err
	}
	return u.wishlistRepo.GetMetadata(ctx, userID)
}

// Reconcile recounts the items and overwrites the stored count.
func (u *WishlistUseCase) Reconcile(ctx context.Context, userID string) (*entity.WishlistMetadata, error) {
	if err := validateIDs(userID); err != nil {
		return nil, err
	}

	before, err := u.wishlistRepo.GetMetadata(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := u.wishlistRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	actual := int64(len(items))
	if before.ItemCount != actual {
		logger.Warn("Wishlist count drift for user %s: stored %d, actual %d", userID, before.ItemCount, actual)
	}

	if err := u.wishlistRepo.SetCount(ctx, userID, actual); err != nil {
		return nil, err
	}

	return u.wishlistRepo.GetMetadata(ctx, userID)
}

// validateIDs rejects ids that would escape their document path.
func validateIDs(ids ...string) error {
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return errors.BadRequest("Identifier is required", nil)
		}
		if strings.Contains(id, "/") || id == "." || id == ".." {
			return errors.BadRequest("Identifier contains invalid characters", nil)
		}
	}
	return nil
}
