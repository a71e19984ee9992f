// internal/app/features/admin/users.go
package admin

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

type statusInput struct {
	IsActive   *bool `json:"isActive"`
	IsVerified *bool `json:"isVerified"`
}

// ServeUsers handles GET /admin/users?search&role.
func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	f := userstore.ListFilter{
		Search: query.Search(r, "search"),
		Role:   query.Get(r, "role"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.users.List(ctx, f)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, users)
}

// HandleUserStatus handles PATCH /admin/users/{id}/status. The two flags
// are independent; an absent flag is left as it is.
func (h *Handler) HandleUserStatus(w http.ResponseWriter, r *http.Request) {
	_, actor, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := inputval.ObjectIDParam(r, "id", userstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	var in statusInput
	if err := apierr.DecodeJSON(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if id == actor && in.IsActive != nil && !*in.IsActive {
		apierr.Write(w, h.Log, apierr.BadRequest("you cannot suspend your own account"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.users.SetStatus(ctx, id, in.IsActive, in.IsVerified)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	h.AuditLog.UserStatusChanged(ctx, r, actor, id, in.IsActive, in.IsVerified)
	apierr.JSON(w, http.StatusOK, u)
}

// HandleDeleteUser handles DELETE /admin/users/{id}. Only the user record
// is removed; content the user owns stays.
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	_, actor, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := inputval.ObjectIDParam(r, "id", userstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if id == actor {
		apierr.Write(w, h.Log, apierr.BadRequest("you cannot delete your own account"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.users.GetByID(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := h.users.Delete(ctx, id); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	h.Log.Info("user deleted", zap.String("user_id", id.Hex()), zap.String("actor_id", actor.Hex()))
	h.AuditLog.UserDeleted(ctx, r, actor, id, u.Email)
	apierr.Message(w, http.StatusOK, "user deleted")
}
