package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infrastructure/docstore"
	apperrors "storefront/pkg/errors"
)

const ordersCollection = "orders"

type orderRepository struct {
	store docstore.Store
}

func NewOrderRepository(store docstore.Store) repository.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.store.Get(ctx, docstore.Join(ordersCollection, id))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, apperrors.NotFound("Order", err)
		}
		return nil, apperrors.Internal("Failed to get order", err)
	}

	if _, ok := doc.Data["totalAmount"]; !ok {
		return nil, apperrors.Internal("Order has no total amount", nil)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, apperrors.Internal("Failed to decode order", err)
	}
	order.ID = doc.ID
	return &order, nil
}
