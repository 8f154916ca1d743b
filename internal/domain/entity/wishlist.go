package entity

import (
	"time"
)

// WishlistItem is a product snapshot saved to a user's wishlist, keyed by
// ProductID. AddedAt is assigned by the store.
type WishlistItem struct {
	ProductID     string    `json:"product_id" firestore:"productId"`
	Name          string    `json:"name" firestore:"name"`
	Price         float64   `json:"price" firestore:"price"`
	DiscountPrice *float64  `json:"discount_price,omitempty" firestore:"discountPrice,omitempty"`
	ImageURL      string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Brand         string    `json:"brand,omitempty" firestore:"brand,omitempty"`
	AddedAt       time.Time `json:"added_at" firestore:"addedAt"`
}

// WishlistMetadata holds the denormalized item count for one user. ItemCount
// is maintained by increments alongside item writes and can drift from the
// real number of items.
type WishlistMetadata struct {
	ItemCount int64     `json:"item_count" firestore:"itemCount"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
