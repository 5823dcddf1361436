package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	updated, _ := args.Get(0).(model.Product)
	return updated, args.Error(1)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	removed, _ := args.Get(0).(model.Product)
	return removed, args.Error(1)
}

func (m *ProductRepoMock) ListLowStock(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) SearchByName(ctx context.Context, name string) ([]model.Product, error) {
	args := m.Called(ctx, name)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) DecrementStock(ctx context.Context, id int64, qty int64) (model.Product, error) {
	args := m.Called(ctx, id, qty)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

type OpsRecorderMock struct{ mock.Mock }

func (m *OpsRecorderMock) Record(op model.Operation, id int64, name string, quantity int64) {
	m.Called(op, id, name, quantity)
}

func (m *OpsRecorderMock) PendingCount() int {
	args := m.Called()
	return args.Int(0)
}

func assertHTTPError(t *testing.T, err error, status int, contains string) {
	t.Helper()
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected *usecase.HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
	assert.Contains(t, he.Message, contains)
}

func validInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:     "Widget",
		Category: "Tools",
		Price:    decimal.RequireFromString("9.99"),
		Quantity: 3,
	}
}

// =====================
// Create
// =====================

func TestProductUsecase_CreateProduct_Validation(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(OpsRecorderMock))
	ctx := context.Background()

	cases := []struct {
		name     string
		mutate   func(*usecase.ProductInput)
		contains string
	}{
		{"empty name", func(in *usecase.ProductInput) { in.Name = "   " }, "name required"},
		{"empty category", func(in *usecase.ProductInput) { in.Category = "" }, "category required"},
		{"zero price", func(in *usecase.ProductInput) { in.Price = decimal.Zero }, "price must be > 0"},
		{"negative price", func(in *usecase.ProductInput) { in.Price = decimal.RequireFromString("-1") }, "price must be > 0"},
		{"three decimal places", func(in *usecase.ProductInput) { in.Price = decimal.RequireFromString("9.999") }, "at most 2 decimal places"},
		{"negative quantity", func(in *usecase.ProductInput) { in.Quantity = -1 }, "quantity must be >= 0"},
		{"huge quantity", func(in *usecase.ProductInput) { in.Quantity = 1000000 }, "quantity must be <= 999999"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := uc.CreateProduct(ctx, in)
			assertHTTPError(t, err, http.StatusBadRequest, tc.contains)
		})
	}
}

func TestProductUsecase_CreateProduct_RecordsOperation(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	ops := new(OpsRecorderMock)
	uc := usecase.NewProductUsecase(pRepo, ops)

	stored := model.Product{ID: 1, Name: "Widget", Category: "Tools", Quantity: 3, LowStock: true}
	pRepo.On("Create", mock.Anything, mock.Anything).Return(stored, nil)
	ops.On("Record", model.OperationCreate, int64(1), "Widget", int64(3)).Return()

	p, err := uc.CreateProduct(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.True(t, p.LowStock)

	pRepo.AssertExpectations(t)
	ops.AssertExpectations(t)
}

func TestProductUsecase_CreateProduct_TrimsNameAndCategory(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	ops := new(OpsRecorderMock)
	uc := usecase.NewProductUsecase(pRepo, ops)

	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Widget" && p.Category == "Tools"
	})).Return(model.Product{ID: 1, Name: "Widget", Quantity: 3}, nil)
	ops.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	in := validInput()
	in.Name = "  Widget  "
	in.Category = " Tools "
	_, err := uc.CreateProduct(ctx, in)
	require.NoError(t, err)
	pRepo.AssertExpectations(t)
}

// =====================
// Get / Update / Delete
// =====================

func TestProductUsecase_GetProduct_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(OpsRecorderMock))

	pRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProduct(context.Background(), 42)
	assertHTTPError(t, err, http.StatusNotFound, "not found")
}

func TestProductUsecase_GetProduct_InvalidID(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(OpsRecorderMock))

	_, err := uc.GetProduct(context.Background(), 0)
	assertHTTPError(t, err, http.StatusBadRequest, "invalid product id")
}

func TestProductUsecase_UpdateProduct_RecordsOperation(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	ops := new(OpsRecorderMock)
	uc := usecase.NewProductUsecase(pRepo, ops)

	updated := model.Product{ID: 7, Name: "Widget", Quantity: 3}
	pRepo.On("Update", mock.Anything, mock.Anything).Return(updated, nil)
	ops.On("Record", model.OperationUpdate, int64(7), "Widget", int64(3)).Return()

	_, err := uc.UpdateProduct(ctx, 7, validInput())
	require.NoError(t, err)
	ops.AssertExpectations(t)
}

func TestProductUsecase_UpdateProduct_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(OpsRecorderMock))

	pRepo.On("Update", mock.Anything, mock.Anything).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.UpdateProduct(context.Background(), 7, validInput())
	assertHTTPError(t, err, http.StatusNotFound, "not found")
}

func TestProductUsecase_DeleteProduct_RecordsLastKnownState(t *testing.T) {
	pRepo := new(ProductRepoMock)
	ops := new(OpsRecorderMock)
	uc := usecase.NewProductUsecase(pRepo, ops)

	removed := model.Product{ID: 3, Name: "Widget", Quantity: 8}
	pRepo.On("Delete", mock.Anything, int64(3)).Return(removed, nil)
	ops.On("Record", model.OperationDelete, int64(3), "Widget", int64(8)).Return()

	err := uc.DeleteProduct(context.Background(), 3)
	require.NoError(t, err)
	ops.AssertExpectations(t)
}

func TestProductUsecase_DeleteProduct_NotFoundDoesNotRecord(t *testing.T) {
	pRepo := new(ProductRepoMock)
	ops := new(OpsRecorderMock)
	uc := usecase.NewProductUsecase(pRepo, ops)

	pRepo.On("Delete", mock.Anything, int64(3)).Return(model.Product{}, repo.ErrNotFound)

	err := uc.DeleteProduct(context.Background(), 3)
	assertHTTPError(t, err, http.StatusNotFound, "not found")
	ops.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// =====================
// Filters / stats
// =====================

func TestProductUsecase_SearchProducts_RequiresName(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(OpsRecorderMock))

	_, err := uc.SearchProducts(context.Background(), "   ")
	assertHTTPError(t, err, http.StatusBadRequest, "name required")
}

func TestProductUsecase_PendingOperations(t *testing.T) {
	ops := new(OpsRecorderMock)
	uc := usecase.NewProductUsecase(new(ProductRepoMock), ops)

	ops.On("PendingCount").Return(4)
	assert.Equal(t, 4, uc.PendingOperations())
}
