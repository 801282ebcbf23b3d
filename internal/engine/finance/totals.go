package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals is the money breakdown of an invoice. Values are exact; rounding
// happens only when they are formatted for display.
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	AdvanceDeducted decimal.Decimal `json:"advance_deducted"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Total           decimal.Decimal `json:"total"`
}

// ComputeTotals applies the advance payment first and taxes what remains.
// Zero advance or tax percentage has no effect.
func ComputeTotals(amount, advancePayment, taxPercentage decimal.Decimal) Totals {
	base := amount.Sub(advancePayment)
	tax := base.Mul(taxPercentage).Div(hundred)

	return Totals{
		Subtotal:        amount,
		AdvanceDeducted: advancePayment,
		TaxAmount:       tax,
		Total:           base.Add(tax),
	}
}

// HasAdvance reports whether the advance payment line should be shown.
func (t Totals) HasAdvance() bool {
	return !t.AdvanceDeducted.IsZero()
}

// HasTax reports whether the tax line should be shown.
func (t Totals) HasTax() bool {
	return !t.TaxAmount.IsZero()
}
