package kiosk

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает HTTP-интерфейс, которым управляет страница киоска
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.State)
		r.Get("/snapshot", h.Snapshot)
		r.Post("/actions/{intent}", h.Press)
		r.Post("/notification/dismiss", h.Dismiss)
		r.Get("/inventory", h.Inventory)
		r.Post("/inventory/refresh", h.RefreshInventory)
		r.Post("/recipe", h.Recipe)
	})

	return r
}
