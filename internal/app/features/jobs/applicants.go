// internal/app/features/jobs/applicants.go
package jobs

import (
	"context"
	"net/http"

	jobstore "github.com/dalemusser/fresherlink/internal/app/store/jobs"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeApplicants handles GET /jobs/{id}/applicants: the job's
// applications, newest first, each with the applicant's current profile.
func (h *Handler) ServeApplicants(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.jobs.GetOwned(ctx, id, uid); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	apps, err := h.applications.ListByJob(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	studentIDs := make([]primitive.ObjectID, len(apps))
	for i, a := range apps {
		studentIDs[i] = a.StudentID
	}
	people, err := h.Views.People(ctx, studentIDs)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	profiles, err := h.profiles.GetMany(ctx, studentIDs)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	out := make([]applicantView, len(apps))
	for i, a := range apps {
		out[i] = applicantView{Application: a, Student: people[a.StudentID]}
		if p, ok := profiles[a.StudentID]; ok {
			out[i].Profile = &p
		}
	}
	apierr.JSON(w, http.StatusOK, out)
}
