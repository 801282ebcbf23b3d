package invoices

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"nexus/internal/pkg/errors"
	"nexus/internal/pkg/validator"
)

type Service struct {
	repo *Repository
	now  func() time.Time
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) CreateInvoice(ctx context.Context, req *Invoice) (*Invoice, error) {
	now := s.now()
	inv := *req
	inv.ID = uuid.New().String()
	inv.ShareToken = nil
	inv.CreatedAt = now.Unix()
	inv.UpdatedAt = now.Unix()

	if inv.ProjectID != nil && *inv.ProjectID == "" {
		inv.ProjectID = nil
	}
	if inv.Status == "" {
		inv.Status = StatusUnpaid
	}
	if inv.IssuedDate == "" {
		inv.IssuedDate = now.Format(DateLayout)
	}
	s.stampPaidDate(&inv)

	if err := Validate(&inv); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, &inv); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &inv); err != nil {
		return nil, err
	}

	log.Info().Str("invoice_id", inv.ID).Str("client_id", inv.ClientID).Msg("invoice created")
	return &inv, nil
}

func (s *Service) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, errors.NewNotFound("invoice", id)
	}
	return inv, nil
}

func (s *Service) ListInvoices(ctx context.Context, f Filter) ([]*Invoice, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.List(ctx, f)
}

// Patch carries the fields an update may change. Nil means unchanged; an
// empty string clears an optional reference or date.
type Patch struct {
	ClientID       *string          `json:"client_id"`
	ProjectID      *string          `json:"project_id"`
	Amount         *decimal.Decimal `json:"amount"`
	AdvancePayment *decimal.Decimal `json:"advance_payment"`
	TaxPercentage  *decimal.Decimal `json:"tax_percentage"`
	CustomTaxName  *string          `json:"custom_tax_name"`
	Status         *Status          `json:"status"`
	IssuedDate     *string          `json:"issued_date"`
	DueDate        *string          `json:"due_date"`
	Notes          *string          `json:"notes"`
}

func (s *Service) UpdateInvoice(ctx context.Context, id string, p *Patch) (*Invoice, error) {
	inv, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.ClientID != nil {
		inv.ClientID = *p.ClientID
	}
	if p.ProjectID != nil {
		inv.ProjectID = optional(*p.ProjectID)
	}
	if p.Amount != nil {
		inv.Amount = *p.Amount
	}
	if p.AdvancePayment != nil {
		inv.AdvancePayment = *p.AdvancePayment
	}
	if p.TaxPercentage != nil {
		inv.TaxPercentage = *p.TaxPercentage
	}
	if p.CustomTaxName != nil {
		inv.CustomTaxName = *p.CustomTaxName
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
	if p.IssuedDate != nil {
		inv.IssuedDate = *p.IssuedDate
	}
	if p.DueDate != nil {
		inv.DueDate = optional(*p.DueDate)
	}
	if p.Notes != nil {
		inv.Notes = *p.Notes
	}

	return s.save(ctx, inv)
}

// ChangeStatus moves an invoice to status. Entering paid stamps today's date
// unless one is already set; leaving paid clears it.
func (s *Service) ChangeStatus(ctx context.Context, id string, status Status) (*Invoice, error) {
	inv, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	from := inv.Status
	inv.Status = status
	updated, err := s.save(ctx, inv)
	if err != nil {
		return nil, err
	}

	log.Info().Str("invoice_id", id).Str("from", string(from)).Str("to", string(status)).Msg("invoice status changed")
	return updated, nil
}

func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NewNotFound("invoice", id)
	}
	return nil
}

func (s *Service) save(ctx context.Context, inv *Invoice) (*Invoice, error) {
	s.stampPaidDate(inv)
	inv.UpdatedAt = s.now().Unix()

	if err := Validate(inv); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// checkReferences turns dangling client or project ids into field errors
// before the insert trips the foreign keys.
func (s *Service) checkReferences(ctx context.Context, inv *Invoice) error {
	var verr error
	ok, err := s.repo.ClientExists(ctx, inv.ClientID)
	if err != nil {
		return err
	}
	if !ok {
		verr = validator.Merge(verr, "client_id", "unknown client")
	}
	if inv.ProjectID != nil {
		ok, err := s.repo.ProjectExists(ctx, *inv.ProjectID)
		if err != nil {
			return err
		}
		if !ok {
			verr = validator.Merge(verr, "project_id", "unknown project")
		}
	}
	return verr
}

func (s *Service) stampPaidDate(inv *Invoice) {
	if inv.Status != StatusPaid {
		inv.PaidDate = nil
		return
	}
	if inv.PaidDate == nil || *inv.PaidDate == "" {
		today := s.now().Format(DateLayout)
		inv.PaidDate = &today
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
