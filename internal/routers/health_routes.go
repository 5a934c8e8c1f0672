package routers

import (
	"github.com/go-chi/chi/v5"

	"careerprep/interview/internal/handlers"
)

func HealthRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/healthz", healthHandler.HealthzHandler)
	router.Get("/readyz", healthHandler.ReadyzHandler)
	router.Get("/api/v1/interview/health", healthHandler.HealthzHandler)
}
