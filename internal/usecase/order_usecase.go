package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	orders   repo.OrderRepository
	products repo.ProductRepository
	ops      OperationRecorder
}

func NewOrderUsecase(orders repo.OrderRepository, products repo.ProductRepository, ops OperationRecorder) *OrderUsecase {
	return &OrderUsecase{
		orders:   orders,
		products: products,
		ops:      ops,
	}
}

type PlaceOrderInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// PlaceOrder commits stock to a new order. The availability check and the
// decrement are one atomic step inside the product store, so concurrent
// orders against the same product cannot oversell it.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (model.Order, error) {
	if in.ProductID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}

	p, err := u.products.DecrementStock(ctx, in.ProductID, in.Quantity)
	if err != nil {
		var ise *repo.InsufficientStockError
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return model.Order{}, NewHTTPError(http.StatusNotFound,
				fmt.Sprintf("product not found with id: %d", in.ProductID))
		case errors.As(err, &ise):
			return model.Order{}, NewHTTPError(http.StatusBadRequest, ise.Error())
		default:
			return model.Order{}, NewHTTPError(http.StatusInternalServerError, "store error")
		}
	}

	o, err := u.orders.Create(ctx, model.Order{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    in.Quantity,
	})
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	u.ops.Record(model.OperationOrder, p.ID, p.Name, in.Quantity)
	return o, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context) ([]model.Order, error) {
	items, err := u.orders.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return items, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	if id <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	o, err := u.orders.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return o, nil
}
