package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/middleware"
	"storefront/internal/usecase"
	"storefront/pkg/errors"
	"storefront/pkg/response"
)

type WishlistHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewWishlistHandler(wishlistUseCase *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	userID := middleware.UserID(c)

	var req usecase.AddWishlistItemInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.wishlistUseCase.Add(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	userID := middleware.UserID(c)
	productID := c.Param("productId")

	if productID == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	if err := h.wishlistUseCase.Remove(c.Request().Context(), userID, productID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Product removed from wishlist successfully",
	})
}

func (h *WishlistHandler) GetUserWishlist(c echo.Context) error {
	items := h.wishlistUseCase.List(c.Request().Context(), middleware.UserID(c))

	return response.Success(c, map[string]interface{}{
		"items": items,
	})
}

func (h *WishlistHandler) CheckWishlistStatus(c echo.Context) error {
	productID := c.Param("productId")
	if productID == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	isInWishlist := h.wishlistUseCase.GetStatus(c.Request().Context(), middleware.UserID(c), productID)

	return response.Success(c, map[string]interface{}{
		"product_id":     productID,
		"is_in_wishlist": isInWishlist,
	})
}

func (h *WishlistHandler) GetWishlistCount(c echo.Context) error {
	meta, err := h.wishlistUseCase.Count(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, meta)
}

func (h *WishlistHandler) ClearWishlist(c echo.Context) error {
	if err := h.wishlistUseCase.Clear(c.Request().Context(), middleware.UserID(c)); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Wishlist cleared",
	})
}

func (h *WishlistHandler) ReconcileCount(c echo.Context) error {
	meta, err := h.wishlistUseCase.Reconcile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, meta)
}
