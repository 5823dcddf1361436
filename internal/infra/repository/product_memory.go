package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ProductMemoryRepository keeps the product collection in process memory
// behind one mutex. Ids are assigned from a monotonic counter starting at 1
// and are never reused, even after deletes. DecrementStock runs its
// check-and-decrement without releasing the mutex, so two concurrent orders
// can never both pass the stock check against a stale quantity.
type ProductMemoryRepository struct {
	mu       sync.Mutex
	products []model.Product
	nextID   int64
	now      func() time.Time
}

func NewProductMemoryRepository() *ProductMemoryRepository {
	return &ProductMemoryRepository{
		nextID: 1,
		now:    time.Now,
	}
}

func (r *ProductMemoryRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++

	now := r.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.RefreshLowStock()

	r.products = append(r.products, p)
	return p, nil
}

// List returns a snapshot copy. Low-stock flags are recomputed from the
// current quantities before copying, so a stale flag heals on read.
func (r *ProductMemoryRepository) List(ctx context.Context) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		r.products[i].RefreshLowStock()
	}

	out := make([]model.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *ProductMemoryRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Product{}, repo.ErrNotFound
	}
	return r.products[i], nil
}

// Update overwrites name, category, price and quantity of an existing
// product and recomputes its low-stock flag.
func (r *ProductMemoryRepository) Update(ctx context.Context, p model.Product) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(p.ID)
	if i < 0 {
		return model.Product{}, repo.ErrNotFound
	}

	cur := &r.products[i]
	cur.Name = p.Name
	cur.Category = p.Category
	cur.Price = p.Price
	cur.Quantity = p.Quantity
	cur.RefreshLowStock()
	cur.UpdatedAt = r.now()
	return *cur, nil
}

func (r *ProductMemoryRepository) Delete(ctx context.Context, id int64) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Product{}, repo.ErrNotFound
	}

	removed := r.products[i]
	r.products = append(r.products[:i], r.products[i+1:]...)
	return removed, nil
}

func (r *ProductMemoryRepository) ListLowStock(ctx context.Context) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Product, 0)
	for i := range r.products {
		r.products[i].RefreshLowStock()
		if r.products[i].LowStock {
			out = append(out, r.products[i])
		}
	}
	return out, nil
}

// SearchByName matches on a case-insensitive substring of the product name.
func (r *ProductMemoryRepository) SearchByName(ctx context.Context, name string) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	needle := strings.ToLower(name)
	out := make([]model.Product, 0)
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// FindByCategory matches the category case-insensitively, exact match only.
func (r *ProductMemoryRepository) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Product, 0)
	for _, p := range r.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

// DecrementStock reduces the product's quantity by qty only if enough stock
// is available. Check and decrement happen under the store mutex.
func (r *ProductMemoryRepository) DecrementStock(ctx context.Context, id int64, qty int64) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Product{}, repo.ErrNotFound
	}

	cur := &r.products[i]
	if cur.Quantity < qty {
		return model.Product{}, &repo.InsufficientStockError{
			ProductID: id,
			Available: cur.Quantity,
			Requested: qty,
		}
	}

	cur.Quantity -= qty
	cur.RefreshLowStock()
	cur.UpdatedAt = r.now()
	return *cur, nil
}

// callers must hold r.mu
func (r *ProductMemoryRepository) indexOf(id int64) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}
