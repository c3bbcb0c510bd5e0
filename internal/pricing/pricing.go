package pricing

import (
	"math"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
)

// GSTRate is the fixed tax rate applied to every line.
const GSTRate = 0.18

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// LineSubtotal returns unitPrice*quantity in minor units.
func LineSubtotal(item model.CartLineItem) int64 {
	return item.UnitPrice * int64(item.Quantity)
}

// LineTax rounds each line's tax independently, half-up to the nearest
// whole minor unit, so the client-side, server-side and provider-side
// computations of the same cart all agree.
func LineTax(item model.CartLineItem) int64 {
	return roundHalfUp(float64(LineSubtotal(item)) * GSTRate)
}

// Totals computes subtotal, tax and grand total for a set of line items.
// Tax is summed per line, never recomputed on the aggregate.
func Totals(items []model.CartLineItem) model.CartTotals {
	var t model.CartTotals
	for _, item := range items {
		sub := LineSubtotal(item)
		tax := LineTax(item)
		t.Subtotal += sub
		t.TaxAmount += tax
		t.GrandTotal += sub + tax
	}
	return t
}

// ClampQuantity forces q into [MinQuantity, MaxQuantity].
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
