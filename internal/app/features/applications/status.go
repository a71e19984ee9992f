// internal/app/features/applications/status.go
package applications

import (
	"context"
	"net/http"

	applicationstore "github.com/dalemusser/fresherlink/internal/app/store/applications"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type statusInput struct {
	Status string `json:"status" validate:"required,appstatus" label:"Status"`
}

// HandleSetStatus handles PUT /applications/{id}/status. Only the company
// owning the job may move an application; it may move it back and forth
// between shortlisted and rejected. Checks run in the order not found,
// forbidden, bad request.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := inputval.ObjectIDParam(r, "id", applicationstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	var in statusInput
	if err := apierr.DecodeJSON(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	app, err := h.applications.GetByID(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	job, err := h.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if job.CompanyID != uid {
		apierr.Write(w, h.Log, apierr.Forbidden("not authorized to update this application"))
		return
	}
	// Validated after ownership so a non-owner is refused whatever the status.
	if err := inputval.Validate(in).Err(); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	updated, err := h.applications.SetStatus(ctx, id, in.Status)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	h.Log.Info("application status changed",
		zap.String("application_id", id.Hex()),
		zap.String("status", updated.Status))

	company, err := h.Views.Person(ctx, uid)
	if err != nil {
		h.Log.Warn("resolve company name", zap.Error(err))
	}
	h.Notify.ApplicationStatusChanged(ctx, *job, *updated, company.Name)

	apierr.JSON(w, http.StatusOK, updated)
}
