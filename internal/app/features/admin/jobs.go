// internal/app/features/admin/jobs.go
package admin

import (
	"context"
	"fmt"
	"net/http"

	jobstore "github.com/dalemusser/fresherlink/internal/app/store/jobs"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type cleanupResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// ServeJobs handles GET /admin/jobs: every job, active or not.
func (h *Handler) ServeJobs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	jobs, err := h.jobs.ListAll(ctx)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	views, err := h.Views.Jobs(ctx, jobs)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, views)
}

// HandleDeleteJob handles DELETE /admin/jobs/{id}.
func (h *Handler) HandleDeleteJob(w http.ResponseWriter, r *http.Request) {
	_, actor, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := inputval.ObjectIDParam(r, "id", jobstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.jobs.Delete(ctx, id); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	h.AuditLog.JobDeleted(ctx, r, actor, id)
	apierr.Message(w, http.StatusOK, "job deleted")
}

// HandleToggleFeatured handles PATCH /admin/jobs/{id}/feature.
func (h *Handler) HandleToggleFeatured(w http.ResponseWriter, r *http.Request) {
	_, actor, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := inputval.ObjectIDParam(r, "id", jobstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	j, err := h.jobs.ToggleFeatured(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	h.AuditLog.JobFeatureToggled(ctx, r, actor, id, j.IsFeatured)
	apierr.JSON(w, http.StatusOK, j)
}

// HandleCleanupExpired handles DELETE /admin/jobs/cleanup/expired. Jobs
// with no deadline, or a deadline at or after now, are kept.
func (h *Handler) HandleCleanupExpired(w http.ResponseWriter, r *http.Request) {
	_, actor, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "cleanup expired jobs")
	defer cancel()

	n, err := h.jobs.DeleteExpired(ctx, h.now())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	h.Log.Info("expired jobs deleted", zap.Int64("count", n), zap.String("actor_id", actor.Hex()))
	h.AuditLog.ExpiredJobsPurged(ctx, r, actor, n)
	apierr.JSON(w, http.StatusOK, cleanupResponse{
		Message:      fmt.Sprintf("%d expired jobs deleted", n),
		DeletedCount: n,
	})
}
