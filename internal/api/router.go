package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/username/tool-rental/internal/rental"
)

// NewRouter builds the HTTP router for the rental service
func NewRouter(calc *rental.Calculator, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(logger))

	h := NewHandler(calc, logger)

	r.Post("/checkout", h.Checkout)

	r.Route("/tools", func(r chi.Router) {
		r.Get("/", h.ListTools)
		r.Get("/{code}", h.GetTool)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
