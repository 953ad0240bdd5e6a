package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/tasksift/internal/api"
	apiMiddleware "github.com/phrazzld/tasksift/internal/api/middleware"
	"github.com/phrazzld/tasksift/internal/metrics"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.CORS)

	taskHandler := api.NewTaskHandler(app.service, app.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(app.config.Server.RequestTimeout()))

			r.Post("/analyze-text", taskHandler.AnalyzeText)
			r.Post("/analyze-preview", taskHandler.AnalyzePreview)
			r.Post("/webhook/email", taskHandler.ProcessEmail)
			r.Post("/analyze-priority", taskHandler.AnalyzePriority)
		})

		r.Get("/health", api.Health)
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
