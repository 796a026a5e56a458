package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/starford/bodygraph/internal/chartservice"
)

// NewRouter creates a chi router with all API routes mounted.
// maxBodyBytes caps request bodies; zero keeps DefaultMaxBodyBytes.
func NewRouter(svc *chartservice.Service, maxBodyBytes int64) chi.Router {
	h := NewHandler(svc)
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestSize(maxBodyBytes))

	// Computation.
	r.Post("/chart", h.Chart)
	r.Post("/houses", h.Houses)

	// Reference catalog.
	r.Get("/gates/{gate}", h.Gate)
	r.Get("/centers", h.Centers)

	return r
}
