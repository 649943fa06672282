package services

import (
	"fmt"
	"math"

	"fashionstore/internal/catalog"
	"fashionstore/internal/models"
	"fashionstore/internal/session"
)

// gstRate is the fixed tax rate applied to the subtotal.
const gstRate = 0.18

// coupons maps coupon codes to flat discount amounts. Applying any
// other code resets the discount to zero.
var coupons = map[string]int{
	"SAVE100": 100,
	"SAVE200": 200,
}

// CartLine is one priced line of the cart summary.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal int    `json:"line_total"`
}

// CartSummary is the pricing projection over the current cart. It is
// recomputed from the catalog and the session state on every read,
// never cached. Total may go negative when the discount exceeds
// subtotal plus GST; this core does not clamp it.
type CartSummary struct {
	Lines    []CartLine `json:"lines"`
	Subtotal int        `json:"subtotal"`
	GST      float64    `json:"gst"`
	Discount int        `json:"discount"`
	Total    float64    `json:"total"`
}

// CartService is the per-session cart ledger: quantity bookkeeping,
// coupon state and the pricing projection.
type CartService struct {
	sessions *session.Store
	catalog  *catalog.Catalog
}

// NewCartService creates a new CartService.
func NewCartService(sessions *session.Store, cat *catalog.Catalog) *CartService {
	return &CartService{
		sessions: sessions,
		catalog:  cat,
	}
}

// AddItem increments the quantity for productID by one, creating the
// cart line at quantity 1 if absent. The product ID is not checked
// against the catalog here; an unknown ID fails later, at pricing.
func (s *CartService) AddItem(sessionID, productID string) error {
	return s.sessions.Update(sessionID, func(cart *models.Cart) error {
		cart.Add(productID)
		return nil
	})
}

// UpdateItem adjusts an existing cart line by one in the given
// direction. Products without a line are silently ignored; a line
// decreased to zero is removed.
func (s *CartService) UpdateItem(sessionID, productID string, action models.CartAction) error {
	return s.sessions.Update(sessionID, func(cart *models.Cart) error {
		cart.Adjust(productID, action)
		return nil
	})
}

// ApplyCoupon overwrites the session's discount from the coupon table.
// Unrecognized codes (including empty) set the discount to zero, even
// if a valid coupon was applied before.
func (s *CartService) ApplyCoupon(sessionID, code string) error {
	return s.sessions.Update(sessionID, func(cart *models.Cart) error {
		cart.Discount = coupons[code]
		return nil
	})
}

// Clear empties the session's cart and resets its discount.
func (s *CartService) Clear(sessionID string) error {
	return s.sessions.Update(sessionID, func(cart *models.Cart) error {
		cart.Clear()
		return nil
	})
}

// Get returns a copy of the session's raw cart state.
func (s *CartService) Get(sessionID string) models.Cart {
	return s.sessions.Get(sessionID)
}

// Summary prices the session's cart: subtotal over all lines, GST at
// 18% rounded to two decimals, the applied discount, and
// total = subtotal + gst - discount. A cart line whose product ID is
// not in the catalog fails the whole call with
// catalog.ErrProductNotFound rather than pricing it at zero.
func (s *CartService) Summary(sessionID string) (*CartSummary, error) {
	cart := s.sessions.Get(sessionID)

	summary := &CartSummary{
		Lines:    make([]CartLine, 0, len(cart.Items)),
		Discount: cart.Discount,
	}
	for _, item := range cart.Items {
		product, err := s.catalog.Get(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to price cart: %w", err)
		}
		lineTotal := product.Price * item.Quantity
		summary.Lines = append(summary.Lines, CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})
		summary.Subtotal += lineTotal
	}

	summary.GST = math.Round(float64(summary.Subtotal)*gstRate*100) / 100
	summary.Total = float64(summary.Subtotal) + summary.GST - float64(summary.Discount)
	return summary, nil
}
