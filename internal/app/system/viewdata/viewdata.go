// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"context"
	"time"

	profilestore "github.com/dalemusser/fresherlink/internal/app/store/profiles"
	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Person is how a user appears next to content they own: a job's company,
// a post's author, a commenter, a follower.
type Person struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Role   string             `json:"role,omitempty"`
	Avatar string             `json:"avatar,omitempty"`
}

// JobView is a job with its company.
//
// Usage:
//
//	views, err := h.Views.Jobs(ctx, jobs)
//	apierr.JSON(w, http.StatusOK, views)
type JobView struct {
	models.Job
	Company Person `json:"company"`
}

// CommentView is a comment with its author.
type CommentView struct {
	models.Comment
	User Person `json:"user"`
}

// PostView is a feed entry: the post, its author and the caller's like.
type PostView struct {
	ID        primitive.ObjectID `json:"id"`
	Author    Person             `json:"author"`
	Caption   string             `json:"caption,omitempty"`
	Media     *models.Media      `json:"media,omitempty"`
	Comments  []CommentView      `json:"comments"`
	LikeCount int64              `json:"likeCount"`
	LikedByMe bool               `json:"likedByMe"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Resolver joins ids to display info. A user deleted since the content
// was written resolves to a Person with only the id set.
type Resolver struct {
	users    *userstore.Store
	profiles *profilestore.Store
}

func NewResolver(db *mongo.Database) *Resolver {
	return &Resolver{users: userstore.New(db), profiles: profilestore.New(db)}
}

// People resolves each id to a Person: the profile name, or the email for
// users without one.
func (v *Resolver) People(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]Person, error) {
	ids = unique(ids)
	users, err := v.users.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	profiles, err := v.profiles.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[primitive.ObjectID]Person, len(ids))
	for _, id := range ids {
		p := Person{ID: id}
		u, hasUser := users[id]
		if hasUser {
			p.Role = u.Role
		}
		if prof, ok := profiles[id]; ok {
			p.Name = profilestore.DisplayName(&prof, u.Email)
			p.Avatar = prof.Avatar()
		} else if hasUser {
			p.Name = u.Email
		}
		out[id] = p
	}
	return out, nil
}

// Person resolves a single id.
func (v *Resolver) Person(ctx context.Context, id primitive.ObjectID) (Person, error) {
	m, err := v.People(ctx, []primitive.ObjectID{id})
	if err != nil {
		return Person{}, err
	}
	return m[id], nil
}

// Jobs attaches each job's company, preserving order.
func (v *Resolver) Jobs(ctx context.Context, jobs []models.Job) ([]JobView, error) {
	ids := make([]primitive.ObjectID, len(jobs))
	for i, j := range jobs {
		ids[i] = j.CompanyID
	}
	people, err := v.People(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]JobView, len(jobs))
	for i, j := range jobs {
		out[i] = JobView{Job: j, Company: people[j.CompanyID]}
	}
	return out, nil
}

// Job is Jobs for one job.
func (v *Resolver) Job(ctx context.Context, j models.Job) (JobView, error) {
	views, err := v.Jobs(ctx, []models.Job{j})
	if err != nil {
		return JobView{}, err
	}
	return views[0], nil
}

// Posts builds feed entries. liked holds the ids of posts the caller likes.
func (v *Resolver) Posts(ctx context.Context, posts []models.Post, liked map[primitive.ObjectID]bool) ([]PostView, error) {
	var ids []primitive.ObjectID
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
		for _, c := range p.Comments {
			ids = append(ids, c.UserID)
		}
	}
	people, err := v.People(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]PostView, len(posts))
	for i, p := range posts {
		comments := make([]CommentView, len(p.Comments))
		for k, c := range p.Comments {
			comments[k] = CommentView{Comment: c, User: people[c.UserID]}
		}
		out[i] = PostView{
			ID:        p.ID,
			Author:    people[p.AuthorID],
			Caption:   p.Caption,
			Media:     p.Media,
			Comments:  comments,
			LikeCount: p.LikeCount,
			LikedByMe: liked[p.ID],
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
	}
	return out, nil
}

func unique(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id.IsZero() {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
