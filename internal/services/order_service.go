package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"fashionstore/internal/catalog"
	"fashionstore/internal/models"
	"fashionstore/internal/repositories"
)

// EventPublisher publishes order events to the message broker.
// *rabbitmq.Client satisfies it; tests substitute a mock and main may
// pass nil to disable publishing.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderService turns a priced cart into a durable order record.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	carts     *CartService
	catalog   *catalog.Catalog
	publisher EventPublisher
	now       func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, carts *CartService, cat *catalog.Catalog, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		carts:     carts,
		catalog:   cat,
		publisher: publisher,
		now:       time.Now,
	}
}

// Checkout converts the session's cart into one order row and clears
// the cart. An empty payment method aborts with no state change, as
// does an empty cart. The stored total is an independent re-sum of
// price * quantity over the cart lines; it deliberately ignores GST
// and the discount, matching the historical totals in the orders
// table (see DESIGN.md). User name and email are snapshotted into the
// order by value.
func (s *OrderService) Checkout(sessionID, userID, paymentMethod string) (*models.Order, error) {
	if paymentMethod == "" {
		return nil, ErrPaymentMethodRequired
	}

	cart := s.carts.Get(sessionID)
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	total := 0
	parts := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, err := s.catalog.Get(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to price order: %w", err)
		}
		total += product.Price * item.Quantity
		parts = append(parts, fmt.Sprintf("%s x%d", item.ProductID, item.Quantity))
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user for checkout: %w", err)
	}

	order := &models.Order{
		UserName:      user.Name,
		UserEmail:     user.Email,
		Items:         strings.Join(parts, ", "),
		Total:         total,
		PaymentMethod: paymentMethod,
		OrderTime:     s.now().Format("2006-01-02 15:04:05"),
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.carts.Clear(sessionID); err != nil {
		return nil, fmt.Errorf("failed to clear cart after checkout: %w", err)
	}

	s.publishOrderPlaced(order)
	return order, nil
}

// publishOrderPlaced emits an order.placed event. Publishing is
// best-effort: failures are logged and never fail the checkout.
func (s *OrderService) publishOrderPlaced(order *models.Order) {
	if s.publisher == nil {
		return
	}

	event := map[string]interface{}{
		"order_id":   order.ID,
		"user_email": order.UserEmail,
		"items":      order.Items,
		"total":      order.Total,
		"order_time": order.OrderTime,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.publisher.Publish("orders", "order.placed", body); err != nil {
		log.Printf("Warning: failed to publish order.placed for order %d: %v", order.ID, err)
	}
}

// ListOrders returns every recorded order, newest first. Access
// control lives in the admin middleware, not here.
func (s *OrderService) ListOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}
