package documents

import (
	"context"

	"golang.org/x/sync/errgroup"
	"nexus/internal/engine/finance"
	"nexus/internal/engine/invoices"
	"nexus/internal/engine/proposals"
	"nexus/internal/engine/share"
	"nexus/internal/pkg/errors"
	"nexus/internal/platform/models"
)

// InvoiceDocument is everything needed to display or render one invoice.
type InvoiceDocument struct {
	Invoice  *invoices.Invoice    `json:"invoice"`
	Client   *models.Client       `json:"client"`
	Project  *models.Project      `json:"project,omitempty"`
	Settings *models.SiteSettings `json:"settings"`
	Totals   finance.Totals       `json:"totals"`
}

// ProposalDocument is everything needed to display or render one proposal.
// Client is nil for unattached proposals.
type ProposalDocument struct {
	Proposal *proposals.Proposal  `json:"proposal"`
	Client   *models.Client       `json:"client,omitempty"`
	Settings *models.SiteSettings `json:"settings"`
}

// Lookups return nil, nil for missing records.
type InvoiceSource interface {
	GetByID(ctx context.Context, id string) (*invoices.Invoice, error)
	GetByShareToken(ctx context.Context, token string) (*invoices.Invoice, error)
}

type ProposalSource interface {
	GetByID(ctx context.Context, id string) (*proposals.Proposal, error)
	GetByShareToken(ctx context.Context, token string) (*proposals.Proposal, error)
}

type ClientSource interface {
	GetByID(ctx context.Context, id string) (*models.Client, error)
}

type ProjectSource interface {
	GetByID(ctx context.Context, id string) (*models.Project, error)
}

type SettingsSource interface {
	Site(ctx context.Context) (*models.SiteSettings, error)
}

// Assembler joins a document's primary record with its related rows. The
// by-id and by-token paths share the same composition, so a record yields
// the same document either way.
type Assembler struct {
	invoices  InvoiceSource
	proposals ProposalSource
	clients   ClientSource
	projects  ProjectSource
	settings  SettingsSource
}

func NewAssembler(inv InvoiceSource, prop ProposalSource, clients ClientSource, projects ProjectSource, settings SettingsSource) *Assembler {
	return &Assembler{
		invoices:  inv,
		proposals: prop,
		clients:   clients,
		projects:  projects,
		settings:  settings,
	}
}

func (a *Assembler) AssembleInvoice(ctx context.Context, id string) (*InvoiceDocument, error) {
	inv, err := a.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, errors.NewNotFound("invoice", id)
	}
	return a.invoiceDocument(ctx, inv)
}

func (a *Assembler) AssembleInvoiceByToken(ctx context.Context, token string) (*InvoiceDocument, error) {
	if !share.ValidToken(token) {
		return nil, errors.NewNotFound("shared invoice", token)
	}
	inv, err := a.invoices.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, errors.NewNotFound("shared invoice", token)
	}
	return a.invoiceDocument(ctx, inv)
}

func (a *Assembler) AssembleProposal(ctx context.Context, id string) (*ProposalDocument, error) {
	p, err := a.proposals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NewNotFound("proposal", id)
	}
	return a.proposalDocument(ctx, p)
}

func (a *Assembler) AssembleProposalByToken(ctx context.Context, token string) (*ProposalDocument, error) {
	if !share.ValidToken(token) {
		return nil, errors.NewNotFound("shared proposal", token)
	}
	p, err := a.proposals.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NewNotFound("shared proposal", token)
	}
	return a.proposalDocument(ctx, p)
}

func (a *Assembler) invoiceDocument(ctx context.Context, inv *invoices.Invoice) (*InvoiceDocument, error) {
	doc := &InvoiceDocument{
		Invoice: inv,
		Totals:  finance.ComputeTotals(inv.Amount, inv.AdvancePayment, inv.TaxPercentage),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		client, err := a.clients.GetByID(gctx, inv.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return errors.NewNotFound("client", inv.ClientID)
		}
		doc.Client = client
		return nil
	})
	if inv.ProjectID != nil {
		// A dangling project reference leaves Project nil.
		g.Go(func() error {
			project, err := a.projects.GetByID(gctx, *inv.ProjectID)
			doc.Project = project
			return err
		})
	}
	g.Go(func() error {
		settings, err := a.settings.Site(gctx)
		doc.Settings = settings
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (a *Assembler) proposalDocument(ctx context.Context, p *proposals.Proposal) (*ProposalDocument, error) {
	doc := &ProposalDocument{Proposal: p}

	g, gctx := errgroup.WithContext(ctx)
	if p.ClientID != nil {
		g.Go(func() error {
			client, err := a.clients.GetByID(gctx, *p.ClientID)
			doc.Client = client
			return err
		})
	}
	g.Go(func() error {
		settings, err := a.settings.Site(gctx)
		doc.Settings = settings
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return doc, nil
}
