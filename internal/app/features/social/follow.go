// internal/app/features/social/follow.go
package social

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleFollow handles POST /users/{id}/follow.
func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	target, err := inputval.ObjectIDParam(r, "id", userstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if target != uid {
		if _, err := h.users.GetByID(ctx, target); err != nil {
			apierr.Write(w, h.Log, err)
			return
		}
	}
	if err := h.follows.Follow(ctx, uid, target); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	follower, err := h.Views.Person(ctx, uid)
	if err != nil {
		h.Log.Warn("resolve follower name", zap.Error(err))
	}
	h.Notify.NewFollower(ctx, target, uid, follower.Name)

	apierr.Message(w, http.StatusCreated, "followed")
}

// HandleUnfollow handles DELETE /users/{id}/follow.
func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	target, err := inputval.ObjectIDParam(r, "id", userstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.follows.Unfollow(ctx, uid, target); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.Message(w, http.StatusOK, "unfollowed")
}
