package followstore

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

var (
	ErrDuplicate  = apierr.Conflict("already following this user")
	ErrNotFound   = apierr.NotFound("not following this user")
	ErrFollowSelf = apierr.BadRequest("you cannot follow yourself")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("follows")}
}

// Follow inserts the follower→followee edge in a single write.
func (s *Store) Follow(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	if followerID == followeeID {
		return ErrFollowSelf
	}
	_, err := s.c.InsertOne(ctx, models.Follow{
		ID:         primitive.NewObjectID(),
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil && wafflemongo.IsDup(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Store) Unfollow(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"follower_id": followerID, "followee_id": followeeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) IsFollowing(ctx context.Context, followerID, followeeID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx,
		bson.M{"follower_id": followerID, "followee_id": followeeID},
		options.Count().SetLimit(1))
	return n > 0, err
}

// Followers returns the ids following userID, most recent first.
func (s *Store) Followers(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.ids(ctx, bson.M{"followee_id": userID}, func(f models.Follow) primitive.ObjectID { return f.FollowerID })
}

// Following returns the ids userID follows, most recent first.
func (s *Store) Following(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.ids(ctx, bson.M{"follower_id": userID}, func(f models.Follow) primitive.ObjectID { return f.FolloweeID })
}

func (s *Store) ids(ctx context.Context, q bson.M, pick func(models.Follow) primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []primitive.ObjectID{}
	for cur.Next(ctx) {
		var f models.Follow
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		out = append(out, pick(f))
	}
	return out, cur.Err()
}

// Counts returns how many users follow userID and how many it follows.
func (s *Store) Counts(ctx context.Context, userID primitive.ObjectID) (followers, following int64, err error) {
	followers, err = s.c.CountDocuments(ctx, bson.M{"followee_id": userID})
	if err != nil {
		return 0, 0, err
	}
	following, err = s.c.CountDocuments(ctx, bson.M{"follower_id": userID})
	return followers, following, err
}
