package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1/jobs", func(r chi.Router) {
		r.Post("/", h.CreateJob)
		r.Get("/near", h.FindJobsNear)
		r.Get("/{idOrSlug}", h.GetJob)
		r.Put("/{idOrSlug}", h.UpdateJob)
		r.Delete("/{idOrSlug}", h.DeleteJob)
	})

	return r
}
