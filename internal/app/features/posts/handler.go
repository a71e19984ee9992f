// internal/app/features/posts/handler.go
package posts

import (
	likestore "github.com/dalemusser/fresherlink/internal/app/store/likes"
	poststore "github.com/dalemusser/fresherlink/internal/app/store/posts"
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/app/system/notify"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the social feed: posts, likes and comments.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Notify *notify.Notifier
	Views  *viewdata.Resolver

	posts *poststore.Store
	likes *likestore.Store
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		Notify: notifier,
		Views:  viewdata.NewResolver(db),
		posts:  poststore.New(db),
		likes:  likestore.New(db),
	}
}

// Routes mounts the feed (typically under "/posts"). Every route needs a
// signed-in user so likedByMe can be computed.
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(am.RequireSignedIn)

	r.Get("/", h.ServeFeed)
	r.Post("/", h.HandleCreate)
	r.Get("/user/{userId}", h.ServeByUser)
	r.Put("/{id}", h.HandleEdit)
	r.Delete("/{id}", h.HandleDelete)
	r.Post("/{id}/like", h.HandleLike)
	r.Post("/{id}/comments", h.HandleComment)
	r.Delete("/{id}/comments/{commentId}", h.HandleDeleteComment)

	return r
}
