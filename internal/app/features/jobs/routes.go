// internal/app/features/jobs/routes.go
package jobs

import (
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the job catalog (typically under "/jobs"). Browsing is
// public; management is for companies and recommendations for students.
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireRole(models.RoleStudent))
		pr.Get("/recommended", h.ServeRecommended)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireRole(models.RoleCompany))
		pr.Post("/", h.HandleCreate)
		pr.Get("/company/mine", h.ServeCompanyJobs)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Get("/{id}/applicants", h.ServeApplicants)
	})

	r.Get("/{id}", h.ServeJob)

	return r
}
