// internal/app/features/account/login.go
package account

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/app/system/normalize"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// A single message for unknown email and wrong password keeps login from
// revealing which accounts exist.
const msgBadCredentials = "invalid email or password"

// HandleLogin handles POST /auth/login and returns {token, user}.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := apierr.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	email := normalize.Email(req.Email)
	if email == "" || req.Password == "" {
		apierr.Message(w, http.StatusBadRequest, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, email); !ok {
			h.AuditLog.LoginFailedRateLimit(ctx, r, email, reason)
			apierr.Message(w, http.StatusTooManyRequests, "too many login attempts, try again later")
			return
		}
	}

	u, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			h.AuditLog.LoginFailedUserNotFound(ctx, r, email)
			apierr.Message(w, http.StatusBadRequest, msgBadCredentials)
			return
		}
		apierr.Write(w, h.Log, err)
		return
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, u.ID)
		apierr.Message(w, http.StatusBadRequest, msgBadCredentials)
		return
	}
	if !u.IsActive {
		h.AuditLog.LoginFailedUserSuspended(ctx, r, u.ID)
		apierr.Message(w, http.StatusForbidden, "your account has been suspended")
		return
	}

	if h.Limiter != nil {
		h.Limiter.Succeeded(email)
	}
	h.AuditLog.LoginSuccess(ctx, r, u.ID)

	resp, err := h.issue(u)
	if err != nil {
		h.Log.Error("issue token", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		apierr.Message(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	apierr.JSON(w, http.StatusOK, resp)
}
