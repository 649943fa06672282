package models

// CartAction is the direction of a quantity adjustment.
type CartAction string

const (
	CartIncrease CartAction = "increase"
	CartDecrease CartAction = "decrease"
)

// CartItem is one line of an in-progress order.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart holds one session's in-progress order: line items in insertion
// order plus the currently applied discount. A quantity is always >= 1;
// adjusting a line to zero removes it instead of storing it.
type Cart struct {
	Items    []CartItem `json:"items"`
	Discount int        `json:"discount"`
}

// Add increments the quantity for productID by one, appending a new
// line at quantity 1 if the product is not in the cart yet.
func (c *Cart) Add(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: 1})
}

// Adjust changes the quantity for productID by one in the given
// direction. Products without a cart line are ignored. Decreasing a
// line to zero or below removes it entirely.
func (c *Cart) Adjust(productID string, action CartAction) {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		switch action {
		case CartIncrease:
			c.Items[i].Quantity++
		case CartDecrease:
			c.Items[i].Quantity--
			if c.Items[i].Quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			}
		}
		return
	}
}

// Quantity returns the quantity for productID, zero when absent.
func (c *Cart) Quantity(productID string) int {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// Count returns the total number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear removes every line and resets the discount.
func (c *Cart) Clear() {
	c.Items = nil
	c.Discount = 0
}
