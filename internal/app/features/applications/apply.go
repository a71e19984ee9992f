// internal/app/features/applications/apply.go
package applications

import (
	"context"
	"net/http"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type applyInput struct {
	JobID string `json:"jobId" validate:"required,objectid" label:"Job id"`
}

// HandleApply handles POST /applications/apply {jobId}. The unique
// (student, job) index decides concurrent duplicates: exactly one insert
// wins and the rest get the duplicate message.
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var in applyInput
	if err := apierr.DecodeJSON(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Validate(in).Err(); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	jobID, _ := primitive.ObjectIDFromHex(in.JobID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	job, err := h.jobs.GetByID(ctx, jobID)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	app, err := h.applications.Create(ctx, uid, jobID)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	h.Log.Info("application submitted",
		zap.String("application_id", app.ID.Hex()),
		zap.String("job_id", jobID.Hex()),
		zap.String("student_id", uid.Hex()))

	student, err := h.Views.Person(ctx, uid)
	if err != nil {
		h.Log.Warn("resolve applicant name", zap.Error(err))
	}
	h.Notify.ApplicationReceived(ctx, *job, app, student.Name)

	apierr.JSON(w, http.StatusCreated, app)
}
