// internal/app/features/admin/announce.go
package admin

import (
	"net/http"
	"strings"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.uber.org/zap"
)

type announceInput struct {
	Message string `json:"message" validate:"notblank,max=1000" label:"Message"`
}

type announceResponse struct {
	Message    string `json:"message"`
	Recipients int    `json:"recipients"`
}

// HandleAnnounce handles POST /admin/announce: one notification for every
// student and company, written in a single batch.
func (h *Handler) HandleAnnounce(w http.ResponseWriter, r *http.Request) {
	_, actor, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var in announceInput
	if err := apierr.DecodeJSON(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Validate(in).Err(); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "announce")
	defer cancel()

	recipients, err := h.users.IDsExceptRole(ctx, models.RoleAdmin)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	n, err := h.Notify.Announce(ctx, actor, recipients, strings.TrimSpace(in.Message))
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	h.Log.Info("announcement sent", zap.Int("recipients", n), zap.String("actor_id", actor.Hex()))
	h.AuditLog.AnnouncementSent(ctx, r, actor, n)
	apierr.JSON(w, http.StatusOK, announceResponse{Message: "announcement sent", Recipients: n})
}
