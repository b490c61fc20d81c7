package domain

import "time"

type Product struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	SalePrice float64   `json:"salePrice,omitempty"`
	Image     string    `json:"image,omitempty"`
	Category  string    `json:"category,omitempty"`
	Sizes     []string  `json:"sizes,omitempty"`
	Colors    []string  `json:"colors,omitempty"`
	Stock     int       `json:"stock"`
	Rating    float64   `json:"rating,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EffectivePrice is the price the storefront charges and filters by: the
// sale price when one is set and not above the regular price.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice > 0 && p.SalePrice <= p.Price {
		return p.SalePrice
	}
	return p.Price
}

// OnSale reports whether the product carries a valid discount.
func (p Product) OnSale() bool {
	return p.SalePrice > 0 && p.SalePrice < p.Price
}

func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}
