package api

import (
	"database/sql"

	"nexus/internal/api/handlers"
	"nexus/internal/api/middleware"
	"nexus/internal/engine/documents"
	"nexus/internal/engine/finance"
	"nexus/internal/engine/invoices"
	"nexus/internal/engine/proposals"
	"nexus/internal/engine/render"
	"nexus/internal/engine/reorder"
	"nexus/internal/engine/share"
	"nexus/internal/engine/showcase"
	"nexus/internal/platform/auth"
	"nexus/internal/platform/config"
	"nexus/internal/platform/metrics"
	"nexus/internal/platform/repositories"
)

// NewDependencies builds every repository, service and handler the router
// needs on top of one database handle.
func NewDependencies(db *sql.DB, cfg *config.Config, m *metrics.Metrics) *Dependencies {
	clientRepo := repositories.NewClientRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	invoiceRepo := invoices.NewRepository(db)
	proposalRepo := proposals.NewRepository(db)

	invoiceShares := share.NewIssuer(share.KindInvoice, invoiceRepo, cfg.Share.PublicBaseURL, m)
	proposalShares := share.NewIssuer(share.KindProposal, proposalRepo, cfg.Share.PublicBaseURL, m)

	assembler := documents.NewAssembler(invoiceRepo, proposalRepo, clientRepo, projectRepo, settingsRepo)
	renderer := render.NewRenderer(cfg.Company, invoiceShares, m)
	money := finance.NewFormatter(cfg.Company.Currency, cfg.Company.Locale)

	invoiceSvc := invoices.NewService(invoiceRepo)
	proposalSvc := proposals.NewService(proposalRepo, proposals.NewGenerator(cfg.Generator))
	showcaseSvc := showcase.NewService(showcase.NewRepository(db), reorder.NewCoordinator(reorder.NewSQLStore(db), m))

	return &Dependencies{
		InvoiceHandler:    handlers.NewInvoiceHandler(invoiceSvc, assembler, renderer, invoiceShares, money),
		ProposalHandler:   handlers.NewProposalHandler(proposalSvc, assembler, renderer, proposalShares),
		ClientHandler:     handlers.NewClientHandler(clientRepo, projectRepo),
		SettingsHandler:   handlers.NewSettingsHandler(settingsRepo),
		CollectionHandler: handlers.NewCollectionHandler(showcaseSvc),
		SharedHandler:     handlers.NewSharedHandler(assembler, renderer, money),
		HealthHandler:     handlers.NewHealthHandler(db),
		AuthMiddleware:    middleware.NewAuthMiddleware(auth.NewTokenService(cfg.JWT)),
		SharedRateLimiter: middleware.NewRateLimiter(cfg.RateLimit.SharedPerMinute),
		APIRateLimiter:    middleware.NewRateLimiter(cfg.RateLimit.APIPerMinute),
		Metrics:           m,
		AdminRole:         cfg.JWT.AdminRole,
	}
}
