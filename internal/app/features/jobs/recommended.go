// internal/app/features/jobs/recommended.go
package jobs

import (
	"context"
	"errors"
	"net/http"

	profilestore "github.com/dalemusser/fresherlink/internal/app/store/profiles"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/recommend"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeRecommended handles GET /jobs/recommended for students.
func (h *Handler) ServeRecommended(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	jobs, err := h.recommend(ctx, uid)
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

// recommend returns up to recommend.Limit active jobs matching the
// student's skills. No skills, or no matches, yields the most recent
// active jobs instead.
func (h *Handler) recommend(ctx context.Context, studentID primitive.ObjectID) ([]models.Job, error) {
	var skills []string
	p, err := h.profiles.GetByUserID(ctx, studentID)
	switch {
	case err == nil:
		skills = p.Skills()
	case !errors.Is(err, profilestore.ErrNotFound):
		return nil, err
	}

	if filter, ok := h.Matcher.Filter(skills); ok {
		matched, err := h.jobs.FindActive(ctx, filter, recommend.Limit)
		if err != nil {
			return nil, err
		}
		if len(matched) > 0 {
			return matched, nil
		}
		h.Log.Debug("no skill matches; falling back to recent jobs", zap.String("student_id", studentID.Hex()))
	}
	return h.jobs.FindActive(ctx, nil, recommend.Limit)
}
