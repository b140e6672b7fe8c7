package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	mw "guardian/internal/api/middleware"
	"guardian/internal/communes"
	"guardian/internal/geo"
	"guardian/internal/geoindex"
	"guardian/pkg/config"
	"guardian/pkg/logger"
)

// The geocoder speaks the raw find_communes wire format, not the API
// envelope, so the dashboard client and this service stay compatible.
func findCommunesHandler(idx *geoindex.Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var coords []communes.LookupCoordinate
		if err := json.NewDecoder(r.Body).Decode(&coords); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		points := make([]geo.Coordinate, len(coords))
		for i, c := range coords {
			points[i] = geo.Coordinate{Lat: c.Lat, Lng: c.Lon}
		}
		results, err := idx.FindCommunes(r.Context(), points)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(results)
	}
}

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	idx, err := geoindex.LoadDir(cfg.ShapefilesDir)
	if err != nil {
		// Serve anyway; an empty index answers with the dedicated
		// status instead of refusing requests.
		log.Warn("boundary index unavailable", zap.Error(err))
		idx = &geoindex.Index{}
	}
	if idx.Empty() {
		log.Warn("no boundary shapefiles loaded", zap.String("dir", cfg.ShapefilesDir))
	}

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Post("/find_communes/", findCommunesHandler(idx))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("geocoder starting",
			zap.String("addr", cfg.HTTPAddr),
			zap.Int("communes", len(idx.Communes())),
		)
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
	}
}
