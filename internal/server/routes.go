package server

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/chat", h.HandleChat)
	r.Get("/status", h.HandleStatus)
	r.Get("/ping", h.HandlePing)
}
