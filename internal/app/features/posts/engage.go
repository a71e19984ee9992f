// internal/app/features/posts/engage.go
package posts

import (
	"context"
	"errors"
	"net/http"

	likestore "github.com/dalemusser/fresherlink/internal/app/store/likes"
	poststore "github.com/dalemusser/fresherlink/internal/app/store/posts"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.uber.org/zap"
)

type likeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// HandleLike handles POST /posts/{id}/like, toggling the caller's like.
// The (post, user) unique index makes the like edge the source of truth;
// the counter follows it.
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
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

	err = h.likes.Like(ctx, id, uid)
	switch {
	case err == nil:
		count, err := h.posts.IncLikes(ctx, id, 1)
		if err != nil {
			apierr.Write(w, h.Log, err)
			return
		}
		liker, err := h.Views.Person(ctx, uid)
		if err != nil {
			h.Log.Warn("resolve liker name", zap.Error(err))
		}
		h.Notify.PostLiked(ctx, *p, uid, liker.Name)
		apierr.JSON(w, http.StatusOK, likeResponse{Liked: true, LikeCount: count})

	case errors.Is(err, likestore.ErrDuplicate):
		removed, err := h.likes.Unlike(ctx, id, uid)
		if err != nil {
			apierr.Write(w, h.Log, err)
			return
		}
		count := p.LikeCount
		if removed {
			if count, err = h.posts.IncLikes(ctx, id, -1); err != nil {
				apierr.Write(w, h.Log, err)
				return
			}
		}
		apierr.JSON(w, http.StatusOK, likeResponse{Liked: false, LikeCount: count})

	default:
		apierr.Write(w, h.Log, err)
	}
}

// HandleComment handles POST /posts/{id}/comments {text}.
func (h *Handler) HandleComment(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := inputval.ObjectIDParam(r, "id", poststore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	var in commentInput
	if err := apierr.DecodeJSON(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Validate(in).Err(); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	text := clean(in.Text)
	if text == "" {
		apierr.Write(w, h.Log, apierr.BadRequest("Comment is required."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.posts.GetByID(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	c, err := h.posts.AddComment(ctx, id, uid, text)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	commenter, err := h.Views.Person(ctx, uid)
	if err != nil {
		h.Log.Warn("resolve commenter name", zap.Error(err))
	}
	h.Notify.PostCommented(ctx, *p, uid, commenter.Name)

	apierr.JSON(w, http.StatusCreated, viewdata.CommentView{Comment: c, User: commenter})
}

// HandleDeleteComment handles DELETE /posts/{id}/comments/{commentId} by
// the comment's author or an admin.
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	role, uid, ok := authz.UserCtx(r)
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

	p, err := h.posts.GetByID(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	c, found := poststore.FindComment(p, commentID)
	if !found {
		apierr.Write(w, h.Log, poststore.ErrCommentNotFound)
		return
	}
	if c.UserID != uid && role != models.RoleAdmin {
		apierr.Write(w, h.Log, apierr.Forbidden("not authorized to delete this comment"))
		return
	}
	if err := h.posts.RemoveComment(ctx, id, commentID); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.Message(w, http.StatusOK, "comment deleted")
}
