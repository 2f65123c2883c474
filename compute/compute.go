// Package compute derives invoice totals from line items. It is pure:
// the same inputs always produce the same outputs and the input slice is
// never mutated.
package compute

import (
	"math"

	"github.com/dev-alt/invoice-generator-go/model"
)

// Result holds the corrected items and the aggregate totals. Values are
// unrounded; rounding happens only at display time to avoid compounding
// error across repeated recomputation.
type Result struct {
	Items       []model.InvoiceItem
	Subtotal    float64
	TaxAmount   float64
	TotalAmount float64
}

// Recompute derives per-item and aggregate totals. Negative, NaN or
// infinite quantities and unit prices count as zero; the stored field
// values are left as entered.
func Recompute(items []model.InvoiceItem, taxRatePercent float64) Result {
	out := make([]model.InvoiceItem, len(items))
	copy(out, items)

	var subtotal float64
	for i := range out {
		total := safeAmount(out[i].Quantity) * safeAmount(out[i].UnitPrice)
		out[i].TotalPrice = total
		subtotal += total
	}

	taxAmount := subtotal * safeAmount(taxRatePercent) / 100
	totalAmount := subtotal + taxAmount

	return Result{
		Items:       out,
		Subtotal:    subtotal,
		TaxAmount:   taxAmount,
		TotalAmount: totalAmount,
	}
}

// safeAmount clamps a value to the non-negative range and coerces
// non-finite input to zero
func safeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
