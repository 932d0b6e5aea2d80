package domain

import "time"

// Cart is the ordered line collection owned by exactly one user.
type Cart struct {
	ID        string     `json:"id,omitempty"`
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Find returns the index of the line with the given key.
func (c *Cart) Find(key LineKey) (int, bool) {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			return i, true
		}
	}
	return -1, false
}

// Products returns the product-kind subset in cart order.
func (c *Cart) Products() []CartItem {
	var out []CartItem
	for _, item := range c.Items {
		if item.Kind == KindProduct {
			out = append(out, item)
		}
	}
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total sums unit price times effective quantity over all lines, in minor
// units. Empty carts total zero.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// RemoveAt deletes the line at index i, preserving order.
func (c *Cart) RemoveAt(i int) {
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}
