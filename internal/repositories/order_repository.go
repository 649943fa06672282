package repositories

import "fashionstore/internal/models"

// OrderRepository defines the interface for order data access. Orders
// are write-once: there is no update or delete.
type OrderRepository interface {
	Create(order *models.Order) error
	GetAll() ([]models.Order, error)
}
