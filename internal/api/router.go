// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/fieldfeed/internal/config"
)

// NewRouter assembles the full HTTP surface.
func NewRouter(cfg *config.ServerConfig, handler *Handler) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(cfg))

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", handler.HealthLive)
		r.Get("/ready", handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimit(cfg))
		r.Use(PrometheusMetrics)

		r.Get("/feed", handler.Feed)

		r.Route("/content", func(r chi.Router) {
			r.Post("/", handler.IngestContent)
			r.Get("/{id}", handler.GetContent)
			r.Delete("/{id}", handler.DeleteContent)
			r.Post("/{id}/engagement", handler.IngestEngagement)
		})

		r.Route("/viewers/{id}", func(r chi.Router) {
			r.Put("/profile", handler.PutProfile)
			r.Put("/exclusions", handler.PutExclusions)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
