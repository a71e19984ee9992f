// internal/app/features/profiles/profile.go
package profiles

import (
	"context"
	"net/http"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeMine handles GET /profile/me.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.profiles.GetByUserID(ctx, uid)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, p)
}

// HandleUpdateMine handles PUT /profile/me. The caller's role picks the
// profile shape; admins have none.
func (h *Handler) HandleUpdateMine(w http.ResponseWriter, r *http.Request) {
	role, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var p models.Profile
	switch role {
	case models.RoleStudent:
		var in studentInput
		if err := apierr.DecodeJSON(r, &in); err != nil {
			apierr.Write(w, h.Log, err)
			return
		}
		if err := inputval.Validate(in).Err(); err != nil {
			apierr.Write(w, h.Log, err)
			return
		}
		p = in.profile(uid)
	case models.RoleCompany:
		var in companyInput
		if err := apierr.DecodeJSON(r, &in); err != nil {
			apierr.Write(w, h.Log, err)
			return
		}
		if err := inputval.Validate(in).Err(); err != nil {
			apierr.Write(w, h.Log, err)
			return
		}
		p = in.profile(uid)
	default:
		apierr.Message(w, http.StatusForbidden, "admins do not have a profile")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := h.profiles.Upsert(ctx, p)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	h.Log.Debug("profile saved", zap.String("user_id", uid.Hex()), zap.String("kind", saved.Kind))
	apierr.JSON(w, http.StatusOK, saved)
}

// ServeByUser handles GET /profile/{userId}.
func (h *Handler) ServeByUser(w http.ResponseWriter, r *http.Request) {
	uid, err := inputval.ObjectIDParam(r, "userId", "user not found")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.users.GetByID(ctx, uid)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	p, err := h.profiles.GetByUserID(ctx, uid)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, publicProfile{
		User:    publicUser{ID: u.ID, Email: u.Email, Role: u.Role},
		Profile: p,
	})
}

// HandleClearField handles DELETE /profile/me/{field}, where field is one
// of resume, photo or logo.
func (h *Handler) HandleClearField(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.profiles.ClearField(ctx, uid, chi.URLParam(r, "field"))
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, p)
}

