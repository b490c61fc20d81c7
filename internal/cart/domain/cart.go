package domain

import "time"

// Line is a cart line item. Name, price and image are snapshots captured
// when the product is added, so a later catalog edit does not change what
// the customer saw in their cart.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	SalePrice float64 `json:"salePrice,omitempty"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// Key identifies a line within a cart. Two selections of the same product
// in a different size or color are distinct lines.
type Key struct {
	ProductID string
	Size      string
	Color     string
}

func (l Line) Key() Key {
	return Key{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

// EffectivePrice is the sale price when one is set and not above the
// regular price, otherwise the regular price.
func (l Line) EffectivePrice() float64 {
	if l.SalePrice > 0 && l.SalePrice <= l.Price {
		return l.SalePrice
	}
	return l.Price
}

type Cart struct {
	ID        string    `json:"id,omitempty"`
	SessionID string    `json:"sessionId"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Add merges the snapshot into an existing line with the same key by
// incrementing its quantity, or appends a new line. Snapshots are
// normalized: negative prices become 0, quantity below 1 becomes 1.
func (c *Cart) Add(snapshot Line) {
	snapshot = normalize(snapshot)

	for i := range c.Lines {
		if c.Lines[i].Key() == snapshot.Key() {
			c.Lines[i].Quantity += snapshot.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, snapshot)
}

// SetQuantity floors the quantity at 1. Dropping below 1 never removes
// the line; removal is an explicit operation.
func (c *Cart) SetQuantity(key Key, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line with the given key. Removing an absent line is
// a no-op.
func (c *Cart) Remove(key Key) {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount is the sum of quantities, shown on the header badge.
func (c *Cart) ItemCount() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

func normalize(l Line) Line {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	if l.Price < 0 {
		l.Price = 0
	}
	if l.SalePrice < 0 {
		l.SalePrice = 0
	}
	return l
}
