// internal/app/features/jobs/manage.go
package jobs

import (
	"context"
	"net/http"

	jobstore "github.com/dalemusser/fresherlink/internal/app/store/jobs"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleCreate handles POST /jobs for companies.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var in createInput
	if err := apierr.DecodeJSON(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Validate(in).Err(); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	j, err := in.job()
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.jobs.Create(ctx, uid, j)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	h.Log.Info("job created", zap.String("job_id", created.ID.Hex()), zap.String("company_id", uid.Hex()))
	apierr.JSON(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /jobs/{id}. A job the caller does not own is
// reported exactly like a missing one.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := inputval.ObjectIDParam(r, "id", jobstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	var in updateInput
	if err := apierr.DecodeJSON(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Validate(in).Err(); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	patch, err := in.patch()
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	j, err := h.jobs.UpdateOwned(ctx, id, uid, patch)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, j)
}

// HandleDelete handles DELETE /jobs/{id} for the owning company.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
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

	if err := h.jobs.DeleteOwned(ctx, id, uid); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	h.Log.Info("job deleted", zap.String("job_id", id.Hex()), zap.String("company_id", uid.Hex()))
	apierr.Message(w, http.StatusOK, "job deleted")
}

// ServeCompanyJobs handles GET /jobs/company/mine: every job of the
// caller, active or not, newest first.
func (h *Handler) ServeCompanyJobs(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	jobs, err := h.jobs.ListByCompany(ctx, uid)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, jobs)
}
