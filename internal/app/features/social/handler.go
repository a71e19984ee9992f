// internal/app/features/social/handler.go
package social

import (
	followstore "github.com/dalemusser/fresherlink/internal/app/store/follows"
	profilestore "github.com/dalemusser/fresherlink/internal/app/store/profiles"
	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/app/system/notify"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// searchLimit caps GET /users/search results.
const searchLimit = 20

// Handler serves the follow graph and user search.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Notify *notify.Notifier
	Views  *viewdata.Resolver

	follows  *followstore.Store
	users    *userstore.Store
	profiles *profilestore.Store
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Notify:   notifier,
		Views:    viewdata.NewResolver(db),
		follows:  followstore.New(db),
		users:    userstore.New(db),
		profiles: profilestore.New(db),
	}
}

// Routes mounts the social graph (typically under "/users").
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(am.RequireSignedIn)

	r.Get("/search", h.ServeSearch)
	r.Post("/{id}/follow", h.HandleFollow)
	r.Delete("/{id}/follow", h.HandleUnfollow)
	r.Get("/{id}/followers", h.ServeFollowers)
	r.Get("/{id}/following", h.ServeFollowing)
	r.Get("/{id}/follow-status", h.ServeFollowStatus)

	return r
}
