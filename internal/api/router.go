package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/api/handlers"
	custommiddleware "github.com/svaidyan/Investment-Return-Calculator-Backend/internal/api/middleware"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/config"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	securityService *service.SecurityService,
	returnService *service.ReturnService,
	importService *service.ImportService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Get("/settings/token", systemHandler.ProviderToken)
			r.Put("/settings/token", systemHandler.SetProviderToken)
		})

		r.Route("/security", func(r chi.Router) {
			securityHandler := handlers.NewSecurityHandler(securityService)
			r.Get("/", securityHandler.Securities)
			r.Post("/", securityHandler.CreateSecurity)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", securityHandler.Security)
				r.Get("/prices", securityHandler.PriceSeries)
				r.Get("/actions", securityHandler.CorporateActions)
				r.Post("/actions", securityHandler.CreateCorporateAction)
				r.Post("/refresh", securityHandler.Refresh)
			})
		})

		r.Route("/returns", func(r chi.Router) {
			returnHandler := handlers.NewReturnHandler(returnService)
			r.Post("/", returnHandler.Compute)
		})

		r.Route("/import", func(r chi.Router) {
			importHandler := handlers.NewImportHandler(importService)
			r.Post("/", importHandler.Import)
		})
	})

	return r
}
