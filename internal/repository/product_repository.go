package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// InsufficientStockError reports a stock decrement rejected because the
// product could not cover the requested quantity.
type InsufficientStockError struct {
	ProductID int64
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available=%d, requested=%d", e.Available, e.Requested)
}

// ProductRepository owns the authoritative product collection.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) (model.Product, error)
	// Delete removes the product and returns it as last seen, so callers can
	// log its final name and quantity.
	Delete(ctx context.Context, id int64) (model.Product, error)

	ListLowStock(ctx context.Context) ([]model.Product, error)
	SearchByName(ctx context.Context, name string) ([]model.Product, error)
	FindByCategory(ctx context.Context, category string) ([]model.Product, error)

	// DecrementStock checks availability and reduces the quantity as one
	// atomic step, returning the updated product. Fails with ErrNotFound or
	// *InsufficientStockError; on failure the quantity is untouched.
	DecrementStock(ctx context.Context, id int64, qty int64) (model.Product, error)
}
