package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// OperationRecorder is the slice of the operation log the usecases need.
// Satisfied by *oplog.OperationLog.
type OperationRecorder interface {
	Record(op model.Operation, id int64, name string, quantity int64)
	PendingCount() int
}

type ProductUsecase struct {
	products repo.ProductRepository
	ops      OperationRecorder
}

func NewProductUsecase(products repo.ProductRepository, ops OperationRecorder) *ProductUsecase {
	return &ProductUsecase{
		products: products,
		ops:      ops,
	}
}

// ProductInput carries the writable product fields for create and update.
type ProductInput struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

func validateProductInput(in ProductInput) (ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)

	if in.Name == "" {
		return in, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if len(in.Name) > 255 {
		return in, NewHTTPError(http.StatusBadRequest, "name too long")
	}
	if in.Category == "" {
		return in, NewHTTPError(http.StatusBadRequest, "category required")
	}
	if len(in.Category) > 100 {
		return in, NewHTTPError(http.StatusBadRequest, "category too long")
	}
	if !in.Price.IsPositive() {
		return in, NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if in.Price.Exponent() < -2 {
		return in, NewHTTPError(http.StatusBadRequest, "price must have at most 2 decimal places")
	}
	if in.Quantity < 0 {
		return in, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}
	if in.Quantity > 999999 {
		return in, NewHTTPError(http.StatusBadRequest, "quantity must be <= 999999")
	}
	return in, nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	in, err := validateProductInput(in)
	if err != nil {
		return model.Product{}, err
	}

	p, err := u.products.Create(ctx, model.Product{
		Name:     in.Name,
		Category: in.Category,
		Price:    in.Price,
		Quantity: in.Quantity,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	u.ops.Record(model.OperationCreate, p.ID, p.Name, p.Quantity)
	return p, nil
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.products.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return items, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return p, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, id int64, in ProductInput) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	in, err := validateProductInput(in)
	if err != nil {
		return model.Product{}, err
	}

	p, err := u.products.Update(ctx, model.Product{
		ID:       id,
		Name:     in.Name,
		Category: in.Category,
		Price:    in.Price,
		Quantity: in.Quantity,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	u.ops.Record(model.OperationUpdate, p.ID, p.Name, p.Quantity)
	return p, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	removed, err := u.products.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "store error")
	}

	// Log the last known name and quantity of the removed product.
	u.ops.Record(model.OperationDelete, removed.ID, removed.Name, removed.Quantity)
	return nil
}

func (u *ProductUsecase) ListLowStockProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.products.ListLowStock(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return items, nil
}

func (u *ProductUsecase) SearchProducts(ctx context.Context, name string) ([]model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "name required")
	}

	items, err := u.products.SearchByName(ctx, name)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return items, nil
}

func (u *ProductUsecase) ListProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "category required")
	}

	items, err := u.products.FindByCategory(ctx, category)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return items, nil
}

// PendingOperations exposes the operation log backlog for observability.
func (u *ProductUsecase) PendingOperations() int {
	return u.ops.PendingCount()
}
