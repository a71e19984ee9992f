// internal/app/features/admin/posts.go
package admin

import (
	"context"
	"net/http"

	poststore "github.com/dalemusser/fresherlink/internal/app/store/posts"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/paging"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"go.uber.org/zap"
)

type postsResponse struct {
	Posts       []viewdata.PostView `json:"posts"`
	TotalPages  int64               `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
	Total       int64               `json:"total"`
}

// ServePosts handles GET /admin/posts?page&limit.
func (h *Handler) ServePosts(w http.ResponseWriter, r *http.Request) {
	pg := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, total, err := h.posts.List(ctx, pg)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	views, err := h.Views.Posts(ctx, posts, nil)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, postsResponse{
		Posts:       views,
		TotalPages:  pg.TotalPages(total),
		CurrentPage: pg.Number,
		Total:       total,
	})
}

// HandleDeletePost handles DELETE /admin/posts/{id}.
func (h *Handler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	_, actor, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := inputval.ObjectIDParam(r, "id", poststore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.posts.GetByID(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := h.posts.Delete(ctx, id); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if _, err := h.likes.DeleteByPost(ctx, id); err != nil {
		h.Log.Warn("delete post likes", zap.Error(err), zap.String("post_id", id.Hex()))
	}
	h.AuditLog.PostDeleted(ctx, r, actor, id, p.AuthorID)
	apierr.Message(w, http.StatusOK, "post deleted")
}

// HandleDeleteComment handles DELETE /admin/posts/{id}/comments/{commentId}.
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	_, actor, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := inputval.ObjectIDParam(r, "id", poststore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	commentID, err := inputval.ObjectIDParam(r, "commentId", poststore.ErrCommentNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.posts.RemoveComment(ctx, id, commentID); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	h.AuditLog.CommentDeleted(ctx, r, actor, id, commentID)
	apierr.Message(w, http.StatusOK, "comment deleted")
}
