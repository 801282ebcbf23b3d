package invoices

import (
	"github.com/shopspring/decimal"
	"nexus/internal/pkg/validator"
)

type Status string

const (
	StatusUnpaid    Status = "unpaid"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// DateLayout is the storage and wire format of calendar dates.
const DateLayout = "2006-01-02"

type Invoice struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"client_id" validate:"required"`
	ProjectID      *string         `json:"project_id,omitempty"`
	Amount         decimal.Decimal `json:"amount" validate:"gte=0"`
	AdvancePayment decimal.Decimal `json:"advance_payment" validate:"gte=0"`
	TaxPercentage  decimal.Decimal `json:"tax_percentage" validate:"gte=0,lte=100"`
	CustomTaxName  string          `json:"custom_tax_name,omitempty" validate:"max=50"`
	Status         Status          `json:"status" validate:"oneof=unpaid paid overdue cancelled"`
	IssuedDate     string          `json:"issued_date" validate:"required,datetime=2006-01-02"`
	DueDate        *string         `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaidDate       *string         `json:"paid_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes          string          `json:"notes,omitempty" validate:"max=5000"`
	ShareToken     *string         `json:"share_token,omitempty"`
	CreatedAt      int64           `json:"created_at"`
	UpdatedAt      int64           `json:"updated_at"`
}

// Number is the short human reference printed on documents.
func (i *Invoice) Number() string {
	if len(i.ID) > 8 {
		return i.ID[:8]
	}
	return i.ID
}

// Validate checks field tags plus the rules spanning fields.
func Validate(inv *Invoice) error {
	err := validator.Struct(inv)
	if inv.AdvancePayment.GreaterThan(inv.Amount) {
		err = validator.Merge(err, "advance_payment", "must not exceed amount")
	}
	return err
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Status   Status
	ClientID string
	Limit    int
	Offset   int
}
