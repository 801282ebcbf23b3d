package invoices

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nexus/internal/pkg/errors"
	"nexus/internal/platform/database/dbtest"
)

func newTestService(t *testing.T) (*Service, *Repository) {
	db := dbtest.New(t)
	for _, id := range []string{"client1", "c1", "c2"} {
		_, err := db.Exec(`INSERT INTO clients (id, name, email, created_at, updated_at) VALUES ($1, $2, $3, 0, 0)`,
			id, "Client "+id, id+"@example.com")
		require.NoError(t, err)
	}
	_, err := db.Exec(`INSERT INTO projects (id, client_id, title, created_at, updated_at) VALUES ('proj1', 'client1', 'Launch', 0, 0)`)
	require.NoError(t, err)

	repo := NewRepository(db)
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestService_CreateInvoiceDefaults(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	inv, err := svc.CreateInvoice(ctx, &Invoice{
		ClientID: "client1",
		Amount:   decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusUnpaid, inv.Status)
	assert.Equal(t, "2024-05-17", inv.IssuedDate)
	assert.Nil(t, inv.PaidDate)
	assert.True(t, inv.AdvancePayment.IsZero())

	stored, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(1000)))
	assert.Nil(t, stored.ShareToken)
}

func TestService_CreateInvoiceValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name  string
		inv   Invoice
		field string
	}{
		{"missing client", Invoice{Amount: decimal.NewFromInt(10)}, "client_id"},
		{"negative amount", Invoice{ClientID: "c", Amount: decimal.NewFromInt(-1)}, "amount"},
		{"advance above amount", Invoice{ClientID: "c", Amount: decimal.NewFromInt(100), AdvancePayment: decimal.NewFromInt(101)}, "advance_payment"},
		{"tax above 100", Invoice{ClientID: "c", Amount: decimal.NewFromInt(100), TaxPercentage: decimal.NewFromInt(120)}, "tax_percentage"},
		{"bad status", Invoice{ClientID: "c", Status: "void"}, "status"},
		{"bad date", Invoice{ClientID: "c", IssuedDate: "17/05/2024"}, "issued_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateInvoice(context.Background(), &tt.inv)

			var verr *errors.ValidationError
			require.True(t, stderrors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestService_CreateInvoiceUnknownReferences(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateInvoice(ctx, &Invoice{ClientID: "gone", Amount: decimal.NewFromInt(10)})
	var verr *errors.ValidationError
	require.True(t, stderrors.As(err, &verr), "got %v", err)
	assert.Equal(t, "unknown client", verr.Fields["client_id"])

	project := "nope"
	_, err = svc.CreateInvoice(ctx, &Invoice{ClientID: "client1", ProjectID: &project, Amount: decimal.NewFromInt(10)})
	require.True(t, stderrors.As(err, &verr), "got %v", err)
	assert.Equal(t, "unknown project", verr.Fields["project_id"])
	assert.NotContains(t, verr.Fields, "client_id")

	empty := ""
	inv, err := svc.CreateInvoice(ctx, &Invoice{ClientID: "client1", ProjectID: &empty, Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Nil(t, inv.ProjectID)

	gone := "gone"
	_, err = svc.UpdateInvoice(ctx, inv.ID, &Patch{ClientID: &gone})
	assert.True(t, stderrors.Is(err, errors.ErrValidation), "got %v", err)
}

func TestService_ChangeStatusStampsPaidDate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	inv, err := svc.CreateInvoice(ctx, &Invoice{ClientID: "client1", Amount: decimal.NewFromInt(50)})
	require.NoError(t, err)

	paid, err := svc.ChangeStatus(ctx, inv.ID, StatusPaid)
	require.NoError(t, err)
	require.NotNil(t, paid.PaidDate)
	assert.Equal(t, "2024-05-17", *paid.PaidDate)

	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	again, err := svc.ChangeStatus(ctx, inv.ID, StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-17", *again.PaidDate)

	reopened, err := svc.ChangeStatus(ctx, inv.ID, StatusOverdue)
	require.NoError(t, err)
	assert.Nil(t, reopened.PaidDate)

	_, err = svc.ChangeStatus(ctx, inv.ID, "void")
	assert.True(t, stderrors.Is(err, errors.ErrValidation))

	_, err = svc.ChangeStatus(ctx, "missing", StatusPaid)
	assert.True(t, errors.IsNotFound(err))
}

func TestService_UpdateInvoice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	project := "proj1"
	inv, err := svc.CreateInvoice(ctx, &Invoice{ClientID: "client1", ProjectID: &project, Amount: decimal.NewFromInt(50)})
	require.NoError(t, err)

	amount := decimal.NewFromInt(75)
	tax := decimal.NewFromInt(8)
	name := "GST"
	empty := ""
	updated, err := svc.UpdateInvoice(ctx, inv.ID, &Patch{
		Amount:        &amount,
		TaxPercentage: &tax,
		CustomTaxName: &name,
		ProjectID:     &empty,
	})
	require.NoError(t, err)

	fetched, err := svc.GetInvoice(ctx, updated.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Amount.Equal(amount))
	assert.Equal(t, "GST", fetched.CustomTaxName)
	assert.Nil(t, fetched.ProjectID)
}

func TestService_DeleteAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateInvoice(ctx, &Invoice{ClientID: "c1", Amount: decimal.NewFromInt(1), IssuedDate: "2024-01-01"})
	require.NoError(t, err)
	_, err = svc.CreateInvoice(ctx, &Invoice{ClientID: "c2", Amount: decimal.NewFromInt(2), IssuedDate: "2024-02-01", Status: StatusPaid})
	require.NoError(t, err)

	all, err := svc.ListInvoices(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2024-02-01", all[0].IssuedDate)

	paid, err := svc.ListInvoices(ctx, Filter{Status: StatusPaid})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, "c2", paid[0].ClientID)

	require.NoError(t, svc.DeleteInvoice(ctx, a.ID))
	assert.True(t, errors.IsNotFound(svc.DeleteInvoice(ctx, a.ID)))
}

func TestRepository_ShareTokenIsSetOnce(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	inv, err := svc.CreateInvoice(ctx, &Invoice{ClientID: "c1", Amount: decimal.NewFromInt(1)})
	require.NoError(t, err)

	token, found, err := repo.ShareToken(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "", token)

	ok, err := repo.SetShareToken(ctx, inv.ID, "first")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SetShareToken(ctx, inv.ID, "second")
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := repo.TokenExists(ctx, "first")
	require.NoError(t, err)
	assert.True(t, exists)

	shared, err := repo.GetByShareToken(ctx, "first")
	require.NoError(t, err)
	require.NotNil(t, shared)
	assert.Equal(t, inv.ID, shared.ID)

	none, err := repo.GetByShareToken(ctx, "second")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, found, err = repo.ShareToken(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepository_EmptyShareTokenIsReplaced(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	inv, err := svc.CreateInvoice(ctx, &Invoice{ClientID: "c1", Amount: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = repo.db.ExecContext(ctx, `UPDATE invoices SET share_token = '' WHERE id = $1`, inv.ID)
	require.NoError(t, err)

	ok, err := repo.SetShareToken(ctx, inv.ID, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)

	token, _, err := repo.ShareToken(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
}
