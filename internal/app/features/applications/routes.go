// internal/app/features/applications/routes.go
package applications

import (
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the application lifecycle (typically under "/applications").
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireRole(models.RoleStudent))
		pr.Post("/apply", h.HandleApply)
		pr.Get("/mine", h.ServeMine)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireRole(models.RoleCompany))
		pr.Put("/{id}/status", h.HandleSetStatus)
	})

	return r
}
