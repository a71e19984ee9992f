// internal/app/features/social/lists.go
package social

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/authz"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type followStatus struct {
	Followers   int64 `json:"followers"`
	Following   int64 `json:"following"`
	IsFollowing bool  `json:"isFollowing"`
}

// ServeFollowers handles GET /users/{id}/followers.
func (h *Handler) ServeFollowers(w http.ResponseWriter, r *http.Request) {
	h.servePeople(w, r, h.follows.Followers)
}

// ServeFollowing handles GET /users/{id}/following.
func (h *Handler) ServeFollowing(w http.ResponseWriter, r *http.Request) {
	h.servePeople(w, r, h.follows.Following)
}

func (h *Handler) servePeople(w http.ResponseWriter, r *http.Request, load func(context.Context, primitive.ObjectID) ([]primitive.ObjectID, error)) {
	id, err := inputval.ObjectIDParam(r, "id", userstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ids, err := load(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	people, err := h.Views.People(ctx, ids)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	out := make([]viewdata.Person, 0, len(ids))
	for _, id := range ids {
		out = append(out, people[id])
	}
	apierr.JSON(w, http.StatusOK, out)
}

// ServeFollowStatus handles GET /users/{id}/follow-status.
func (h *Handler) ServeFollowStatus(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := inputval.ObjectIDParam(r, "id", userstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var st followStatus
	if st.Followers, st.Following, err = h.follows.Counts(ctx, id); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if st.IsFollowing, err = h.follows.IsFollowing(ctx, uid, id); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, st)
}

// ServeSearch handles GET /users/search?q=, matching profile names.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	q := query.Search(r, "q")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	profiles, err := h.profiles.SearchByName(ctx, q, searchLimit)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ids := make([]primitive.ObjectID, len(profiles))
	for i, p := range profiles {
		ids[i] = p.UserID
	}
	people, err := h.Views.People(ctx, ids)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	out := make([]viewdata.Person, 0, len(ids))
	for _, id := range ids {
		out = append(out, people[id])
	}
	apierr.JSON(w, http.StatusOK, out)
}
