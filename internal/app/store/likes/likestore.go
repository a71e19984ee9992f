package likestore

import (
	"context"
	"time"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDuplicate = apierr.Conflict("post already liked")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("post_likes")}
}

// Like inserts the (post, user) edge; ErrDuplicate if it exists.
func (s *Store) Like(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := s.c.InsertOne(ctx, models.PostLike{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil && wafflemongo.IsDup(err) {
		return ErrDuplicate
	}
	return err
}

// Unlike removes the edge and reports whether one existed.
func (s *Store) Unlike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"post_id": postID, "user_id": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// LikedSet reports which of postIDs userID has liked.
func (s *Store) LikedSet(ctx context.Context, userID primitive.ObjectID, postIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	out := make(map[primitive.ObjectID]bool, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx,
		bson.M{"user_id": userID, "post_id": bson.M{"$in": postIDs}},
		options.Find().SetProjection(bson.M{"post_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var l models.PostLike
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		out[l.PostID] = true
	}
	return out, cur.Err()
}

// DeleteByPost removes every like of a deleted post.
func (s *Store) DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"post_id": postID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
