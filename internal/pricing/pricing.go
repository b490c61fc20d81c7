package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/solowear/storefront/internal/cart/domain"
)

// Policy is the deployment's shipping and tax configuration. A zero tax
// rate disables the tax line entirely.
type Policy struct {
	ShippingFlatFee decimal.Decimal
	TaxRate         decimal.Decimal
}

func NewPolicy(shippingFlatFee, taxRate float64) Policy {
	return Policy{
		ShippingFlatFee: decimal.NewFromFloat(shippingFlatFee),
		TaxRate:         decimal.NewFromFloat(taxRate),
	}
}

// Breakdown is a totals computation result. Amounts are rounded half-up
// to two decimal places. TaxApplied reports whether the policy charged
// tax; Tax is 0 when it did not.
type Breakdown struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	TaxApplied bool    `json:"taxApplied"`
}

// ComputeTotals derives the totals breakdown for the given lines. It is
// pure: no side effects, deterministic, and independent of line order.
func ComputeTotals(lines []domain.Line, policy Policy) Breakdown {
	subtotal := decimal.Zero
	for _, l := range lines {
		price := decimal.NewFromFloat(l.EffectivePrice())
		qty := decimal.NewFromInt(int64(l.Quantity))
		subtotal = subtotal.Add(price.Mul(qty).Round(2))
	}

	shipping := decimal.Zero
	if len(lines) > 0 {
		shipping = policy.ShippingFlatFee
	}

	tax := decimal.Zero
	taxApplied := policy.TaxRate.IsPositive()
	if taxApplied {
		tax = subtotal.Mul(policy.TaxRate).Round(2)
	}

	total := subtotal.Add(shipping).Add(tax)

	return Breakdown{
		Subtotal:   subtotal.InexactFloat64(),
		Shipping:   shipping.InexactFloat64(),
		Tax:        tax.InexactFloat64(),
		Total:      total.InexactFloat64(),
		TaxApplied: taxApplied,
	}
}
