package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"guardian/internal/alerts"
	"guardian/internal/api"
	"guardian/internal/api/handlers"
	"guardian/internal/communes"
	"guardian/internal/dashboard"
	"guardian/internal/geo"
	"guardian/internal/overlay"
	"guardian/internal/store"
	"guardian/pkg/config"
	"guardian/pkg/database"
	"guardian/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting guardian API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("store", cfg.StoreDriver),
	)

	ctx := context.Background()

	var (
		resourceStore store.ResourceStore
		alertStore    store.AlertStore
	)
	switch cfg.StoreDriver {
	case "postgres":
		db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("database connection failed", zap.Error(err))
		}
		resourceStore = store.NewPostgresResourceStore(db)
		alertStore = store.NewPostgresAlertStore(db)
	default:
		resourceStore = store.NewMemoryResourceStore(store.SeedResources())
		alertStore = store.NewMemoryAlertStore(store.SeedAlerts())
	}

	reference := geo.Coordinate{Lat: cfg.ReferenceLat, Lng: cfg.ReferenceLon}
	annotator := communes.NewAnnotator(communes.NewClient(cfg.CommuneAPIURL))
	overlays := overlay.NewLoader(cfg.BoundaryFilesURL)
	alertService := alerts.NewService(alertStore)

	monitor := alerts.NewMonitor(resourceStore, alertService)
	if err := monitor.Start(cfg.TelemetryScanCron); err != nil {
		log.Fatal("telemetry monitor failed to start", zap.Error(err))
	}
	defer monitor.Stop()

	router := api.NewRouter(api.Dependencies{
		ResourcesHandler: handlers.NewResourcesHandler(resourceStore, annotator, reference),
		MapHandler:       handlers.NewMapHandler(resourceStore, annotator, overlays, reference),
		AlertsHandler:    handlers.NewAlertsHandler(alertService),
		DashboardHandler: handlers.NewDashboardHandler(dashboard.NewService(resourceStore)),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
