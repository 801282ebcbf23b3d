package documents

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nexus/internal/engine/invoices"
	"nexus/internal/engine/proposals"
	"nexus/internal/engine/share"
	"nexus/internal/pkg/errors"
	"nexus/internal/platform/database/dbtest"
	"nexus/internal/platform/models"
	"nexus/internal/platform/repositories"
)

type fixture struct {
	db        *sql.DB
	assembler *Assembler
	invoices  *invoices.Repository
	proposals *proposals.Repository
	client    *models.Client
}

func setup(t *testing.T) *fixture {
	db := dbtest.New(t)
	ctx := context.Background()

	clients := repositories.NewClientRepository(db)
	settings := repositories.NewSettingsRepository(db)
	f := &fixture{
		db:        db,
		invoices:  invoices.NewRepository(db),
		proposals: proposals.NewRepository(db),
		client:    &models.Client{Name: "Jane Doe", Company: "Acme", Email: "jane@acme.test"},
	}
	f.assembler = NewAssembler(f.invoices, f.proposals, clients, repositories.NewProjectRepository(db), settings)

	require.NoError(t, clients.Create(ctx, f.client))
	require.NoError(t, settings.SaveGeneral(ctx, &models.GeneralSettings{CompanyName: "Call To Actions"}))
	return f
}

func (f *fixture) invoice(t *testing.T, inv *invoices.Invoice) *invoices.Invoice {
	created, err := invoices.NewService(f.invoices).CreateInvoice(context.Background(), inv)
	require.NoError(t, err)
	return created
}

// dangle runs stmt with foreign keys off, leaving the kind of broken reference
// a hosted store without enforced constraints can hold.
func (f *fixture) dangle(t *testing.T, stmt string, args ...interface{}) {
	_, err := f.db.Exec(`PRAGMA foreign_keys = OFF`)
	require.NoError(t, err)
	defer f.db.Exec(`PRAGMA foreign_keys = ON`)

	_, err = f.db.Exec(stmt, args...)
	require.NoError(t, err)
}

func TestAssembleInvoice(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv := f.invoice(t, &invoices.Invoice{
		ClientID:       f.client.ID,
		Amount:         decimal.NewFromInt(1000),
		AdvancePayment: decimal.NewFromInt(200),
		TaxPercentage:  decimal.NewFromInt(10),
		CustomTaxName:  "VAT",
	})

	doc, err := f.assembler.AssembleInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", doc.Client.Company)
	assert.Nil(t, doc.Project)
	assert.Equal(t, "Call To Actions", doc.Settings.General.CompanyName)
	assert.True(t, doc.Totals.TaxAmount.Equal(decimal.NewFromInt(80)))
	assert.True(t, doc.Totals.Total.Equal(decimal.NewFromInt(880)))
}

func TestAssembleInvoice_SameByIDAndToken(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv := f.invoice(t, &invoices.Invoice{ClientID: f.client.ID, Amount: decimal.RequireFromString("1234.56")})
	token, err := share.NewIssuer(share.KindInvoice, f.invoices, "", nil).Share(ctx, inv.ID)
	require.NoError(t, err)

	byID, err := f.assembler.AssembleInvoice(ctx, inv.ID)
	require.NoError(t, err)
	byToken, err := f.assembler.AssembleInvoiceByToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, byID, byToken)
}

func TestAssembleInvoice_NotFound(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.assembler.AssembleInvoice(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))

	_, err = f.assembler.AssembleInvoiceByToken(ctx, "not-a-token")
	assert.True(t, errors.IsNotFound(err))

	_, err = f.assembler.AssembleInvoiceByToken(ctx, "abcdefghijklmnopqrstuvwxyz012345")
	assert.True(t, errors.IsNotFound(err))

	orphan := f.invoice(t, &invoices.Invoice{ClientID: f.client.ID, Amount: decimal.NewFromInt(1)})
	f.dangle(t, `DELETE FROM clients WHERE id = $1`, f.client.ID)
	_, err = f.assembler.AssembleInvoice(ctx, orphan.ID)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "client")
}

func TestAssembleInvoice_DanglingProjectIsDropped(t *testing.T) {
	f := setup(t)

	inv := f.invoice(t, &invoices.Invoice{ClientID: f.client.ID, Amount: decimal.NewFromInt(5)})
	f.dangle(t, `UPDATE invoices SET project_id = 'deleted-project' WHERE id = $1`, inv.ID)

	doc, err := f.assembler.AssembleInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Nil(t, doc.Project)
}

func TestAssembleProposal(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	svc := proposals.NewService(f.proposals, nil)

	attached, err := svc.CreateProposal(ctx, &proposals.Proposal{Title: "Rebrand", ClientID: &f.client.ID})
	require.NoError(t, err)
	dangling, err := svc.CreateProposal(ctx, &proposals.Proposal{Title: "Orphan"})
	require.NoError(t, err)
	f.dangle(t, `UPDATE proposals SET client_id = 'gone' WHERE id = $1`, dangling.ID)
	unattached, err := svc.CreateProposal(ctx, &proposals.Proposal{Title: "Cold pitch"})
	require.NoError(t, err)

	doc, err := f.assembler.AssembleProposal(ctx, attached.ID)
	require.NoError(t, err)
	assert.Equal(t, f.client.ID, doc.Client.ID)

	for _, id := range []string{dangling.ID, unattached.ID} {
		doc, err := f.assembler.AssembleProposal(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, doc.Client)
		assert.NotNil(t, doc.Settings)
	}

	token, err := share.NewIssuer(share.KindProposal, f.proposals, "", nil).Share(ctx, attached.ID)
	require.NoError(t, err)
	byToken, err := f.assembler.AssembleProposalByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, attached.ID, byToken.Proposal.ID)

	_, err = f.assembler.AssembleProposal(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
}
