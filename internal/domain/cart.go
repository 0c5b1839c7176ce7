package domain

import "time"

// Cart is the canonical snapshot of one shopper's selections.
// Version is the optimistic-concurrency token checked on every save.
type Cart struct {
	ID        string     `bson:"_id" json:"id"`
	Items     []CartItem `bson:"items" json:"items"`
	Version   int64      `bson:"version" json:"-"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// CartItem is one line in the cart, keyed by (ProductID, Color).
// Color is nil for products without a variant.
type CartItem struct {
	ID        string    `bson:"id" json:"id"`
	ProductID string    `bson:"product_id" json:"product_id"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	Color     *string   `bson:"color" json:"color"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

// sameVariant reports whether the line matches the (productID, color) pair.
func (i CartItem) sameVariant(productID string, color *string) bool {
	if i.ProductID != productID {
		return false
	}
	if i.Color == nil || color == nil {
		return i.Color == color
	}
	return *i.Color == *color
}

// MergeItem adds quantity to the line matching (productID, color), or
// appends a new line with the given id. At most one line per pair ever
// exists. Returns the affected line.
func (c *Cart) MergeItem(id, productID string, color *string, quantity int, now time.Time) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].sameVariant(productID, color) {
			c.Items[idx].Quantity += quantity
			return &c.Items[idx]
		}
	}
	c.Items = append(c.Items, CartItem{
		ID:        id,
		ProductID: productID,
		Quantity:  quantity,
		Color:     color,
		AddedAt:   now,
	})
	return &c.Items[len(c.Items)-1]
}

// SetQuantity overwrites the quantity of the line with the given id.
// Returns nil when no such line exists; the cart is left untouched.
func (c *Cart) SetQuantity(itemID string, quantity int) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			c.Items[idx].Quantity = quantity
			return &c.Items[idx]
		}
	}
	return nil
}

// DropItem filters the line with the given id out of the cart.
// Removing an absent id is a no-op.
func (c *Cart) DropItem(itemID string) {
	filtered := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != itemID {
			filtered = append(filtered, item)
		}
	}
	c.Items = filtered
}

// Clone returns a deep value copy. Orders hold clones so later cart
// mutations never reach a finalized order.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Items = make([]CartItem, len(c.Items))
	copy(cp.Items, c.Items)
	for idx := range cp.Items {
		if c.Items[idx].Color != nil {
			color := *c.Items[idx].Color
			cp.Items[idx].Color = &color
		}
	}
	return &cp
}
