package finance

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name                 string
		amount, advance, tax string
		wantTax, wantTotal   string
	}{
		{"all zero", "0", "0", "0", "0", "0"},
		{"advance and tax", "1000", "200", "10", "80", "880"},
		{"no advance", "1000", "0", "10", "100", "1100"},
		{"no tax", "1000", "250", "0", "0", "750"},
		{"fractional", "199.99", "0.99", "7.5", "14.925", "213.925"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(d(tt.amount), d(tt.advance), d(tt.tax))

			assert.True(t, got.Subtotal.Equal(d(tt.amount)), "subtotal %s", got.Subtotal)
			assert.True(t, got.AdvanceDeducted.Equal(d(tt.advance)), "advance %s", got.AdvanceDeducted)
			assert.True(t, got.TaxAmount.Equal(d(tt.wantTax)), "tax %s", got.TaxAmount)
			assert.True(t, got.Total.Equal(d(tt.wantTotal)), "total %s", got.Total)
		})
	}
}

func TestComputeTotals_ZeroValueInputs(t *testing.T) {
	var zero decimal.Decimal
	got := ComputeTotals(zero, zero, zero)

	assert.True(t, got.Total.IsZero())
	assert.True(t, got.TaxAmount.IsZero())
	assert.False(t, got.HasAdvance())
	assert.False(t, got.HasTax())
}

func TestComputeTotals_MatchesFormula(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		amount := float64(r.Intn(1000001)) / 100
		advance := math.Floor(r.Float64()*amount*100) / 100
		tax := float64(r.Intn(10001)) / 100

		got := ComputeTotals(
			decimal.NewFromFloat(amount),
			decimal.NewFromFloat(advance),
			decimal.NewFromFloat(tax),
		)

		want := amount - advance + (amount-advance)*tax/100
		total, _ := got.Total.Round(2).Float64()
		if math.Abs(total-want) > 0.0051 {
			t.Fatalf("amount=%v advance=%v tax=%v: total %v, want %v", amount, advance, tax, total, want)
		}
		if got.Total.IsNegative() {
			t.Fatalf("negative total for amount=%v advance=%v", amount, advance)
		}
	}
}
