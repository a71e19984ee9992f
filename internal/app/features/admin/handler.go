// internal/app/features/admin/handler.go
package admin

import (
	"time"

	applicationstore "github.com/dalemusser/fresherlink/internal/app/store/applications"
	"github.com/dalemusser/fresherlink/internal/app/store/audit"
	jobstore "github.com/dalemusser/fresherlink/internal/app/store/jobs"
	likestore "github.com/dalemusser/fresherlink/internal/app/store/likes"
	poststore "github.com/dalemusser/fresherlink/internal/app/store/posts"
	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"github.com/dalemusser/fresherlink/internal/app/system/auditlog"
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/app/system/notify"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// recentSignups is how many users the stats endpoint lists.
const recentSignups = 5

// Handler serves platform oversight. Every mutation is written to the
// audit log with the acting admin.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Notify   *notify.Notifier
	AuditLog *auditlog.Logger
	Views    *viewdata.Resolver

	// now is replaceable in tests of the expired-job sweep.
	now func() time.Time

	users        *userstore.Store
	jobs         *jobstore.Store
	applications *applicationstore.Store
	posts        *poststore.Store
	likes        *likestore.Store
	audits       *audit.Store
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, audits *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		Notify:       notifier,
		AuditLog:     audits,
		Views:        viewdata.NewResolver(db),
		now:          func() time.Time { return time.Now().UTC() },
		users:        userstore.New(db),
		jobs:         jobstore.New(db),
		applications: applicationstore.New(db),
		posts:        poststore.New(db),
		likes:        likestore.New(db),
		audits:       audit.New(db),
	}
}

// Routes mounts oversight under "/admin" for admins only.
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(am.RequireRole(models.RoleAdmin))

	r.Get("/stats", h.ServeStats)
	r.Get("/audit", h.ServeAudit)

	r.Get("/users", h.ServeUsers)
	r.Patch("/users/{id}/status", h.HandleUserStatus)
	r.Delete("/users/{id}", h.HandleDeleteUser)

	r.Get("/jobs", h.ServeJobs)
	r.Delete("/jobs/cleanup/expired", h.HandleCleanupExpired)
	r.Delete("/jobs/{id}", h.HandleDeleteJob)
	r.Patch("/jobs/{id}/feature", h.HandleToggleFeatured)

	r.Get("/posts", h.ServePosts)
	r.Delete("/posts/{id}", h.HandleDeletePost)
	r.Delete("/posts/{id}/comments/{commentId}", h.HandleDeleteComment)

	r.Post("/announce", h.HandleAnnounce)

	return r
}
