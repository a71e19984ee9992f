// internal/app/features/posts/feed.go
package posts

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/paging"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeFeed handles GET /posts?page&limit, newest first.
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	pg := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, total, err := h.posts.List(ctx, pg)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	views, err := h.views(ctx, uid, posts)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, feedResponse{
		Posts:       views,
		TotalPages:  pg.TotalPages(total),
		CurrentPage: pg.Number,
		Total:       total,
	})
}

// ServeByUser handles GET /posts/user/{userId}.
func (h *Handler) ServeByUser(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	author, err := inputval.ObjectIDParam(r, "userId", userstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.posts.ListByAuthor(ctx, author)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	views, err := h.views(ctx, uid, posts)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, views)
}

// views resolves authors and the viewer's likes for posts.
func (h *Handler) views(ctx context.Context, viewer primitive.ObjectID, posts []models.Post) ([]viewdata.PostView, error) {
	ids := make([]primitive.ObjectID, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	liked, err := h.likes.LikedSet(ctx, viewer, ids)
	if err != nil {
		return nil, err
	}
	return h.Views.Posts(ctx, posts, liked)
}

// view is views for a single post.
func (h *Handler) view(ctx context.Context, viewer primitive.ObjectID, p models.Post) (viewdata.PostView, error) {
	vs, err := h.views(ctx, viewer, []models.Post{p})
	if err != nil {
		return viewdata.PostView{}, err
	}
	return vs[0], nil
}
