package handlers

import (
	"errors"
	"log"

	"fashionstore/internal/catalog"
	"fashionstore/internal/middleware"
	"fashionstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for checkout and order listing.
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// RegisterRoutes registers the order routes. Checkout needs a session;
// the listing additionally needs the admin claim.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/checkout", h.HandleCheckout)
	orderRoutes.Get("/", middleware.AdminRequired(), h.HandleListOrders)
}

// CheckoutRequest represents the request body for checkout.
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// HandleCheckout converts the session cart into an order. A missing
// payment method sends the caller back to checkout without an error
// payload.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userID, _ := c.Locals("user_id").(string)
	order, err := h.orderService.Checkout(sessionID(c), userID, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentMethodRequired):
			// Silent redirect back to checkout, not an error message.
			return c.Redirect("/api/v1/orders/checkout", fiber.StatusSeeOther)
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		case errors.Is(err, catalog.ErrProductNotFound):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Cart contains a product that is no longer available",
			})
		}
		log.Printf("Error during checkout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not complete checkout",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// HandleListOrders returns every recorded order, newest first.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(orders)
}
