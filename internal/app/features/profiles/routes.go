// internal/app/features/profiles/routes.go
package profiles

import (
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the profile endpoints (typically under "/profile").
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(am.RequireSignedIn)

	r.Get("/me", h.ServeMine)
	r.Put("/me", h.HandleUpdateMine)
	r.Delete("/me/{field}", h.HandleClearField)
	r.Get("/{userId}", h.ServeByUser)

	return r
}
