package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/OPRYAN90/robodog-request-system/internal/api"
)

// RegisterAPIRoutes mounts the JSON API under /api/v1.
func RegisterAPIRoutes(r chi.Router, h *api.Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/paths", func(r chi.Router) {
			r.Post("/", h.CreatePath)
			r.Get("/", h.ListPaths)

			r.Route("/{pathID}", func(r chi.Router) {
				r.Get("/", h.GetPath)
				r.Delete("/", h.DeletePath)
				r.Post("/activate", h.ActivatePath)
				r.Post("/deactivate", h.DeactivatePath)
				r.Get("/telemetry", h.PathTelemetry)
			})
		})

		r.Route("/draft", func(r chi.Router) {
			r.Post("/", h.BeginDraft)
			r.Get("/", h.GetDraft)
			r.Delete("/", h.CancelDraft)
			r.Post("/points", h.AddDraftPoint)
			r.Post("/complete", h.CompleteDraft)
		})

		r.Get("/robot", h.RobotPosition)
	})
}
