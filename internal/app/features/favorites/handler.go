// internal/app/features/favorites/handler.go
package favorites

import (
	"context"
	"net/http"

	favoritestore "github.com/dalemusser/fresherlink/internal/app/store/favorites"
	jobstore "github.com/dalemusser/fresherlink/internal/app/store/jobs"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves a student's bookmarked jobs.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Views *viewdata.Resolver

	favorites *favoritestore.Store
	jobs      *jobstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Views:     viewdata.NewResolver(db),
		favorites: favoritestore.New(db),
		jobs:      jobstore.New(db),
	}
}

// Routes mounts favorites (typically under "/favorites"), students only.
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(am.RequireRole(models.RoleStudent))

	r.Get("/", h.ServeList)
	r.Get("/check/{jobId}", h.ServeCheck)
	r.Post("/{jobId}", h.HandleAdd)
	r.Delete("/{jobId}", h.HandleRemove)

	return r
}

// HandleAdd handles POST /favorites/{jobId}.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	jobID, err := inputval.ObjectIDParam(r, "jobId", jobstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.jobs.GetByID(ctx, jobID); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	f, err := h.favorites.Add(ctx, uid, jobID)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusCreated, f)
}

// HandleRemove handles DELETE /favorites/{jobId}.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	jobID, err := inputval.ObjectIDParam(r, "jobId", favoritestore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.favorites.Remove(ctx, uid, jobID); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.Message(w, http.StatusOK, "removed from favorites")
}

// ServeList handles GET /favorites: the favorited jobs, most recently
// favorited first. Favorites of since-deleted jobs are skipped.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ids, err := h.favorites.JobIDs(ctx, uid)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	byID, err := h.jobs.GetMany(ctx, ids)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ordered := make([]models.Job, 0, len(ids))
	for _, id := range ids {
		if j, ok := byID[id]; ok {
			ordered = append(ordered, j)
		}
	}
	views, err := h.Views.Jobs(ctx, ordered)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, views)
}

// ServeCheck handles GET /favorites/check/{jobId}. Absence is an answer,
// not an error.
func (h *Handler) ServeCheck(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	jobID, err := inputval.ObjectIDParam(r, "jobId", jobstore.ErrNotFound.Error())
	if err != nil {
		apierr.JSON(w, http.StatusOK, map[string]bool{"isFavorite": false})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	exists, err := h.favorites.Exists(ctx, uid, jobID)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, map[string]bool{"isFavorite": exists})
}
