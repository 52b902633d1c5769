package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/alphavantage"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/api"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/config"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/database"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/fred"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/pacing"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/repository"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/scheduler"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/secrets"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/service"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/yahoo"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	log.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	// Secrets vault for stored provider keys (optional)
	var vault *secrets.Vault
	if cfg.Secrets.FernetKey != "" {
		vault, err = secrets.NewVault(cfg.Secrets.FernetKey)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load fernet key")
		}
	} else {
		log.Warn().Msg("no fernet key configured; provider keys can only come from the environment")
	}

	// Create repositories
	holdingRepo := repository.NewHoldingRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	settingsService := service.NewSettingsService(settingRepo, vault, cfg.Providers, log)

	quoteService := service.NewQuoteService(yahoo.NewFinanceClient(), log)
	fundamentalsService := service.NewFundamentalsService(
		alphavantage.NewFundamentalsClient(settingsService.AlphaVantageKey),
		quoteService,
		log,
	)
	yieldService := service.NewYieldService(
		fred.NewYieldClient(settingsService.FredKey),
		cfg.Providers.FredSeries,
		cfg.Providers.DefaultYield,
		log,
	)

	holdingService := service.NewHoldingService(
		db, holdingRepo, historyRepo,
		quoteService, fundamentalsService, yieldService,
		log,
	)
	portfolioService := service.NewPortfolioService(holdingRepo)
	historyService := service.NewHistoryService(historyRepo)
	refreshService := service.NewRefreshService(
		db, holdingRepo, historyRepo,
		quoteService, fundamentalsService, yieldService,
		pacing.New(cfg.Refresh.PaceEvery, cfg.Refresh.PaceInterval),
		log,
	)

	// Optional scheduled auto-refresh
	if cfg.Refresh.Cron != "" {
		cronScheduler := scheduler.New(log)
		err := cronScheduler.AddJob(cfg.Refresh.Cron, "refresh", func(ctx context.Context) error {
			_, err := refreshService.Refresh(ctx)
			return err
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to register refresh job")
		}
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	// Create router
	router := api.NewRouter(
		systemService, settingsService,
		holdingService, portfolioService, historyService, refreshService,
		cfg, log,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // a paced refresh batch can run long
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
