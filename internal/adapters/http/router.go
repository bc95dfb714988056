package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/powderline/avalanche-report-service/internal/application"
)

// Handler is the HTTP adapter entrypoint for report and comment use-cases.
// Keeping only the application dependency here preserves clean adapter boundaries.
type Handler struct {
	service *application.Service
}

// NewHandler constructs an HTTP handler bound to the application service.
func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

// NewRouter registers the HTTP routes and middleware stack.
// Reads are public; mutations require a resolved identity.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/reports", handler.listReports)
		r.Get("/reports/{report_id}", handler.getReport)
		r.Get("/reports/{report_id}/comments", handler.listComments)

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Post("/reports", handler.submitReport)
			r.Patch("/reports/{report_id}", handler.updateReport)
			r.Post("/comments", handler.createComment)
		})
	})

	return r
}
