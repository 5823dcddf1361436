package repository

import (
	"context"

	"app/internal/domain/model"
)

// OrderRepository owns the order collection. Orders are append-only.
type OrderRepository interface {
	Create(ctx context.Context, o model.Order) (model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	FindByID(ctx context.Context, id int64) (model.Order, error)
}
