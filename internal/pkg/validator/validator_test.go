package validator

import (
	stderrors "errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nexus/internal/pkg/errors"
)

type sample struct {
	Email  string          `json:"email" validate:"required,email"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
	Status string          `json:"status" validate:"oneof=lead active inactive"`
	Date   string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		in         sample
		wantFields []string
	}{
		{
			name: "valid",
			in:   sample{Email: "jo@example.com", Amount: decimal.NewFromInt(10), Status: "lead", Date: "2024-01-31"},
		},
		{
			name:       "negative amount",
			in:         sample{Email: "jo@example.com", Amount: decimal.NewFromInt(-1), Status: "active"},
			wantFields: []string{"amount"},
		},
		{
			name:       "bad email and status",
			in:         sample{Email: "nope", Status: "vip"},
			wantFields: []string{"email", "status"},
		},
		{
			name:       "bad date",
			in:         sample{Email: "jo@example.com", Status: "lead", Date: "31/01/2024"},
			wantFields: []string{"date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			var verr *errors.ValidationError
			require.True(t, stderrors.As(err, &verr))
			for _, f := range tt.wantFields {
				assert.Contains(t, verr.Fields, f)
			}
			assert.Len(t, verr.Fields, len(tt.wantFields))
		})
	}
}

func TestMerge(t *testing.T) {
	err := Merge(nil, "advance_payment", "must not exceed amount")
	assert.True(t, stderrors.Is(err, errors.ErrValidation))

	err = Merge(Struct(sample{Email: "x", Status: "lead"}), "amount", "custom")
	var verr *errors.ValidationError
	require.True(t, stderrors.As(err, &verr))
	assert.Equal(t, "custom", verr.Fields["amount"])
	assert.Contains(t, verr.Fields, "email")
}
