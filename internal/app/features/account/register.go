// internal/app/features/account/register.go
package account

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	profilestore "github.com/dalemusser/fresherlink/internal/app/store/profiles"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/normalize"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/app/system/txn"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.uber.org/zap"
)

type registerRequest struct {
	Email       string `json:"email" validate:"required,email" label:"Email"`
	Password    string `json:"password" validate:"required,min=6" label:"Password"`
	Role        string `json:"role" validate:"required,oneof=student company" label:"Role"`
	Name        string `json:"name" validate:"required_if=Role student,max=120" label:"Name"`
	CompanyName string `json:"companyName" validate:"required_if=Role company,max=120" label:"Company name"`
}

func (req *registerRequest) normalize() {
	req.Email = normalize.Email(req.Email)
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	req.Name = normalize.Name(req.Name)
	req.CompanyName = normalize.Name(req.CompanyName)
}

func (req *registerRequest) displayName() string {
	if req.Role == models.RoleCompany {
		return req.CompanyName
	}
	return req.Name
}

// HandleRegister handles POST /auth/register. The user and their empty
// profile are written together; a duplicate email leaves neither behind.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := apierr.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	req.normalize()
	if err := inputval.Validate(req).Err(); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("hash password", zap.Error(err))
		apierr.Message(w, http.StatusInternalServerError, "could not register user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var created models.User
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		u, err := h.users.Create(ctx, models.User{
			Email:        req.Email,
			PasswordHash: hash,
			Role:         req.Role,
			IsActive:     true,
		})
		if err != nil {
			return err
		}
		kind, _ := profilestore.KindForRole(u.Role)
		if _, err := h.profiles.Upsert(ctx, profilestore.Empty(u.ID, kind, req.displayName())); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		created = u
		return nil
	})
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	h.AuditLog.Registered(ctx, r, created.ID, created.Role)
	h.Log.Info("user registered", zap.String("user_id", created.ID.Hex()), zap.String("role", created.Role))

	resp, err := h.issue(&created)
	if err != nil {
		h.Log.Error("issue token", zap.Error(err))
		apierr.Message(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	apierr.JSON(w, http.StatusCreated, resp)
}
