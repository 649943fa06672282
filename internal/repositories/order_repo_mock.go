package repositories

import (
	"sync"

	"fashionstore/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository
// for tests and local runs without a database.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
	nextID uint
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{nextID: 1}
}

// Create appends a new order, assigning a sequential ID.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	r.orders = append(r.orders, *order)
	return nil
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}
