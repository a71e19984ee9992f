// internal/app/features/account/me.go
package account

import (
	"context"
	"errors"
	"net/http"

	profilestore "github.com/dalemusser/fresherlink/internal/app/store/profiles"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
)

// ServeMe handles GET /auth/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.users.GetByID(ctx, uid)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	resp := meResponse{User: u}
	p, err := h.profiles.GetByUserID(ctx, uid)
	switch {
	case err == nil:
		resp.Profile = p
	case !errors.Is(err, profilestore.ErrNotFound):
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, resp)
}
