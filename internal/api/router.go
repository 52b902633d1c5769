package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/api/middleware"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/config"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	settingsService *service.SettingsService,
	holdingService *service.HoldingService,
	portfolioService *service.PortfolioService,
	historyService *service.HistoryService,
	refreshService *service.RefreshService,
	cfg *config.Config,
	log zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService, settingsService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Put("/keys", systemHandler.UpdateKeys)
		})

		r.Route("/holding", func(r chi.Router) {
			holdingHandler := handlers.NewHoldingHandler(holdingService, portfolioService)
			r.Get("/", holdingHandler.Holdings)
			r.Post("/", holdingHandler.AddHolding)
			r.Delete("/{symbol}", holdingHandler.DeleteHolding)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService, historyService, refreshService, holdingService)
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/history", portfolioHandler.History)
			r.Post("/refresh", portfolioHandler.Refresh)
			r.Get("/refresh", portfolioHandler.RefreshStatus)
			r.Delete("/", portfolioHandler.Clear)
		})
	})

	return r
}
