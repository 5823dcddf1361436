package repository

import (
	"context"
	"sync"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// OrderMemoryRepository keeps orders in insertion order behind one mutex.
// The id counter is independent from the product counter and also starts at 1.
type OrderMemoryRepository struct {
	mu     sync.Mutex
	orders []model.Order
	nextID int64
	now    func() time.Time
}

func NewOrderMemoryRepository() *OrderMemoryRepository {
	return &OrderMemoryRepository{
		nextID: 1,
		now:    time.Now,
	}
}

func (r *OrderMemoryRepository) Create(ctx context.Context, o model.Order) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o.ID = r.nextID
	r.nextID++
	o.OrderDate = r.now()

	r.orders = append(r.orders, o)
	return o, nil
}

func (r *OrderMemoryRepository) List(ctx context.Context) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *OrderMemoryRepository) FindByID(ctx context.Context, id int64) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Order{}, repo.ErrNotFound
}
