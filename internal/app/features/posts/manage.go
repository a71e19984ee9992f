// internal/app/features/posts/manage.go
package posts

import (
	"context"
	"net/http"

	poststore "github.com/dalemusser/fresherlink/internal/app/store/posts"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /posts. A post needs a caption, media or both.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var in createInput
	if err := apierr.DecodeJSON(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Validate(in).Err(); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	caption := clean(in.Caption)
	if caption == "" && in.Media == nil {
		apierr.Write(w, h.Log, apierr.BadRequest("A post needs a caption or media."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.posts.Create(ctx, uid, caption, in.media())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	view, err := h.view(ctx, uid, p)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusCreated, view)
}

// HandleEdit handles PUT /posts/{id}; only the author may change the
// caption, and others see the post as missing.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
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

	var in captionInput
	if err := apierr.DecodeJSON(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Validate(in).Err(); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	caption := clean(in.Caption)
	if caption == "" {
		cur, err := h.posts.GetByID(ctx, id)
		if err != nil {
			apierr.Write(w, h.Log, err)
			return
		}
		if cur.AuthorID == uid && cur.Media == nil {
			apierr.Write(w, h.Log, apierr.BadRequest("A post needs a caption or media."))
			return
		}
	}

	p, err := h.posts.UpdateCaption(ctx, id, uid, caption)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	view, err := h.view(ctx, uid, *p)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, view)
}

// HandleDelete handles DELETE /posts/{id} by the author or an admin. The
// post's likes go with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.posts.GetByID(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if p.AuthorID != uid && role != models.RoleAdmin {
		apierr.Write(w, h.Log, apierr.Forbidden("not authorized to delete this post"))
		return
	}
	if err := h.posts.Delete(ctx, id); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if _, err := h.likes.DeleteByPost(ctx, id); err != nil {
		h.Log.Warn("delete post likes", zap.Error(err), zap.String("post_id", id.Hex()))
	}
	apierr.Message(w, http.StatusOK, "post deleted")
}
