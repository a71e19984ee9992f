// internal/app/features/applications/mine.go
package applications

import (
	"context"
	"net/http"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// myApplication is an application with its job. Job is null when the
// job was deleted after the student applied.
type myApplication struct {
	models.Application
	Job *viewdata.JobView `json:"job"`
}

// ServeMine handles GET /applications/mine, newest first.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	apps, err := h.applications.ListByStudent(ctx, uid)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	jobIDs := make([]primitive.ObjectID, len(apps))
	for i, a := range apps {
		jobIDs[i] = a.JobID
	}
	byID, err := h.jobs.GetMany(ctx, jobIDs)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	jobs := make([]models.Job, 0, len(byID))
	for _, j := range byID {
		jobs = append(jobs, j)
	}
	views, err := h.Views.Jobs(ctx, jobs)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	viewByID := make(map[primitive.ObjectID]viewdata.JobView, len(views))
	for _, v := range views {
		viewByID[v.ID] = v
	}

	out := make([]myApplication, len(apps))
	for i, a := range apps {
		out[i] = myApplication{Application: a}
		if v, ok := viewByID[a.JobID]; ok {
			out[i].Job = &v
		}
	}
	apierr.JSON(w, http.StatusOK, out)
}
