package handlers

import (
	"errors"
	"log"

	"fashionstore/internal/catalog"
	"fashionstore/internal/models"
	"fashionstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the cart routes. All of them require an
// authenticated session.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleViewCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items", h.HandleUpdateItem)
	cartRoutes.Post("/coupon", h.HandleApplyCoupon)
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals("session_id").(string)
	return id
}

// AddItemRequest represents the request body for adding to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// HandleAddItem adds one unit of a product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.cartService.AddItem(sessionID(c), req.ProductID); err != nil {
		log.Printf("Error adding %s to cart: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
		})
	}

	cart := h.cartService.Get(sessionID(c))
	return c.JSON(fiber.Map{
		"message":    "Item added to cart",
		"cart_count": cart.Count(),
	})
}

// UpdateItemRequest represents the request body for adjusting a line.
type UpdateItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Action    string `json:"action" validate:"required,oneof=increase decrease"`
}

// HandleUpdateItem adjusts an existing cart line up or down by one.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.cartService.UpdateItem(sessionID(c), req.ProductID, models.CartAction(req.Action)); err != nil {
		log.Printf("Error updating cart line %s: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Cart updated",
	})
}

// HandleViewCart returns the priced cart summary. Pricing is
// recomputed on every request.
func (h *CartHandler) HandleViewCart(c *fiber.Ctx) error {
	summary, err := h.cartService.Summary(sessionID(c))
	if err != nil {
		log.Printf("Error pricing cart: %v", err)
		if errors.Is(err, catalog.ErrProductNotFound) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Cart contains a product that is no longer available",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not price cart",
		})
	}
	return c.JSON(summary)
}

// ApplyCouponRequest represents the request body for applying a coupon.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// HandleApplyCoupon sets the session discount from the coupon code.
// Unknown codes reset the discount to zero.
func (h *CartHandler) HandleApplyCoupon(c *fiber.Ctx) error {
	var req ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.cartService.ApplyCoupon(sessionID(c), req.Code); err != nil {
		log.Printf("Error applying coupon %s: %v", req.Code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not apply coupon",
		})
	}

	cart := h.cartService.Get(sessionID(c))
	return c.JSON(fiber.Map{
		"message":  "Coupon applied",
		"discount": cart.Discount,
	})
}
