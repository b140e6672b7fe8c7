package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"guardian/internal/api/handlers"
	mw "guardian/internal/api/middleware"
)

type Dependencies struct {
	ResourcesHandler *handlers.ResourcesHandler
	MapHandler       *handlers.MapHandler
	AlertsHandler    *handlers.AlertsHandler
	DashboardHandler *handlers.DashboardHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/resources", func(rr chi.Router) {
			rr.Get("/", dep.ResourcesHandler.List)
			rr.Post("/", dep.ResourcesHandler.Create)
			rr.Get("/options", dep.ResourcesHandler.Options)
			rr.Get("/{id}", dep.ResourcesHandler.Get)
			rr.Put("/{id}", dep.ResourcesHandler.Update)
			rr.Delete("/{id}", dep.ResourcesHandler.Delete)
		})

		api.Route("/map", func(mr chi.Router) {
			mr.Get("/view", dep.MapHandler.View)
			mr.Get("/overlays", dep.MapHandler.Overlays)
		})

		api.Route("/alerts", func(ar chi.Router) {
			ar.Get("/", dep.AlertsHandler.List)
			ar.Post("/", dep.AlertsHandler.Create)
			ar.Post("/dismiss-all", dep.AlertsHandler.DismissAll)
			ar.Post("/{id}/dismiss", dep.AlertsHandler.Dismiss)
		})

		api.Get("/dashboard/summary", dep.DashboardHandler.Summary)
	})

	return r
}
