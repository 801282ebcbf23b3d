package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"nexus/internal/api/handlers"
	"nexus/internal/api/middleware"
	apiContext "nexus/internal/api/context"
	"nexus/internal/platform/auth"
	"nexus/internal/platform/metrics"
	"nexus/internal/pkg/errors"
)

type Dependencies struct {
	InvoiceHandler    *handlers.InvoiceHandler
	ProposalHandler   *handlers.ProposalHandler
	ClientHandler     *handlers.ClientHandler
	SettingsHandler   *handlers.SettingsHandler
	CollectionHandler *handlers.CollectionHandler
	SharedHandler     *handlers.SharedHandler
	HealthHandler     *handlers.HealthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	SharedRateLimiter *middleware.RateLimiter
	APIRateLimiter    *middleware.RateLimiter
	Metrics           *metrics.Metrics
	AdminRole         string
}

type middlewareFunc = func(http.HandlerFunc) http.HandlerFunc

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()
	m := deps.Metrics

	// Operational endpoints
	router.GET("/health", wrap(deps.HealthHandler.Check))
	router.Handler(http.MethodGet, "/metrics", m.Handler())

	// Public shared documents
	public := func(route string, h http.HandlerFunc) httprouter.Handle {
		return chain(h, instrument(m, route), deps.SharedRateLimiter.Handle)
	}
	shared := deps.SharedHandler
	router.GET("/invoices/shared/:token", public("/invoices/shared/:token", shared.Invoice))
	router.GET("/invoices/shared/:token/pdf", public("/invoices/shared/:token/pdf", shared.InvoicePDF))
	router.GET("/proposals/shared/:token", public("/proposals/shared/:token", shared.Proposal))
	router.GET("/proposals/shared/:token/pdf", public("/proposals/shared/:token/pdf", shared.ProposalPDF))

	// Everything under /api/v1 is admin only
	authMid := deps.AuthMiddleware
	admin := func(route string, h http.HandlerFunc) httprouter.Handle {
		return chain(h, instrument(m, route), deps.APIRateLimiter.Handle, authMid.Handle, requireRole(deps.AdminRole))
	}

	inv := deps.InvoiceHandler
	router.POST("/api/v1/invoices", admin("/api/v1/invoices", inv.Create))
	router.GET("/api/v1/invoices", admin("/api/v1/invoices", inv.List))
	router.GET("/api/v1/invoices/:id", admin("/api/v1/invoices/:id", inv.Get))
	router.PATCH("/api/v1/invoices/:id", admin("/api/v1/invoices/:id", inv.Update))
	router.DELETE("/api/v1/invoices/:id", admin("/api/v1/invoices/:id", inv.Delete))
	router.POST("/api/v1/invoices/:id/status", admin("/api/v1/invoices/:id/status", inv.ChangeStatus))
	router.GET("/api/v1/invoices/:id/pdf", admin("/api/v1/invoices/:id/pdf", inv.PDF))
	router.POST("/api/v1/invoices/:id/share", admin("/api/v1/invoices/:id/share", inv.Share))
	router.GET("/api/v1/invoices/:id/share/qr", admin("/api/v1/invoices/:id/share/qr", inv.ShareQR))

	prop := deps.ProposalHandler
	router.POST("/api/v1/proposals", admin("/api/v1/proposals", prop.Create))
	router.GET("/api/v1/proposals", admin("/api/v1/proposals", prop.List))
	router.POST("/api/v1/proposals/:id", admin("/api/v1/proposals/:id", byAction(map[string]http.HandlerFunc{
		"generate": prop.Generate,
	})))
	router.GET("/api/v1/proposals/:id", admin("/api/v1/proposals/:id", prop.Get))
	router.PATCH("/api/v1/proposals/:id", admin("/api/v1/proposals/:id", prop.Update))
	router.DELETE("/api/v1/proposals/:id", admin("/api/v1/proposals/:id", prop.Delete))
	router.POST("/api/v1/proposals/:id/status", admin("/api/v1/proposals/:id/status", prop.ChangeStatus))
	router.GET("/api/v1/proposals/:id/pdf", admin("/api/v1/proposals/:id/pdf", prop.PDF))
	router.POST("/api/v1/proposals/:id/share", admin("/api/v1/proposals/:id/share", prop.Share))

	clients := deps.ClientHandler
	router.POST("/api/v1/clients", admin("/api/v1/clients", clients.Create))
	router.GET("/api/v1/clients", admin("/api/v1/clients", clients.List))
	router.GET("/api/v1/clients/:id", admin("/api/v1/clients/:id", clients.Get))
	router.POST("/api/v1/projects", admin("/api/v1/projects", clients.CreateProject))
	router.GET("/api/v1/projects", admin("/api/v1/projects", clients.ListProjects))

	settings := deps.SettingsHandler
	router.GET("/api/v1/settings", admin("/api/v1/settings", settings.Get))
	router.PUT("/api/v1/settings", admin("/api/v1/settings", settings.SaveGeneral))
	router.PUT("/api/v1/settings/social", admin("/api/v1/settings/social", settings.ReplaceSocial))

	col := deps.CollectionHandler
	router.GET("/api/v1/collections/:collection", admin("/api/v1/collections/:collection", col.List))
	router.POST("/api/v1/collections/:collection", admin("/api/v1/collections/:collection", col.Create))
	router.DELETE("/api/v1/collections/:collection/:id", admin("/api/v1/collections/:collection/:id", col.Delete))
	router.POST("/api/v1/collections/:collection/reorder", admin("/api/v1/collections/:collection/reorder", col.Reorder))
	router.POST("/api/v1/collections/:collection/normalize", admin("/api/v1/collections/:collection/normalize", col.Normalize))

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...middlewareFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		// Inject params into context
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}

// byAction serves POST /collection/<action>. httprouter cannot hold a static
// segment next to the :id wildcard, so the action is matched on the param.
func byAction(actions map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, _ := r.Context().Value(apiContext.Params).(httprouter.Params)
		if h, ok := actions[params.ByName("id")]; ok {
			h(w, r)
			return
		}
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Not found", nil)
	}
}

func instrument(m *metrics.Metrics, route string) middlewareFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return m.Instrument(route, next).ServeHTTP
	}
}

func requireRole(roles ...string) middlewareFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(apiContext.Claims).(*auth.Claims)

			allowed := false
			for _, role := range roles {
				if ok && claims.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				errors.WriteError(w, http.StatusForbidden, errors.ErrCodeForbidden, "Insufficient permissions", nil)
				return
			}

			next(w, r)
		}
	}
}
