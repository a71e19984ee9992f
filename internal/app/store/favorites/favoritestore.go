package favoritestore

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
	ErrDuplicate = apierr.Conflict("job already in favorites")
	ErrNotFound  = apierr.NotFound("favorite not found")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("favorites")}
}

// Add bookmarks jobID for studentID. An existing favorite is reported as
// ErrDuplicate whether the explicit check or the unique index catches it.
func (s *Store) Add(ctx context.Context, studentID, jobID primitive.ObjectID) (models.Favorite, error) {
	exists, err := s.Exists(ctx, studentID, jobID)
	if err != nil {
		return models.Favorite{}, err
	}
	if exists {
		return models.Favorite{}, ErrDuplicate
	}

	f := models.Favorite{
		ID:        primitive.NewObjectID(),
		StudentID: studentID,
		JobID:     jobID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Favorite{}, ErrDuplicate
		}
		return models.Favorite{}, err
	}
	return f, nil
}

func (s *Store) Remove(ctx context.Context, studentID, jobID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"student_id": studentID, "job_id": jobID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists never fails on absence; it reports false.
func (s *Store) Exists(ctx context.Context, studentID, jobID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx,
		bson.M{"student_id": studentID, "job_id": jobID},
		options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// JobIDs returns the student's favorited job ids, most recent first.
func (s *Store) JobIDs(ctx context.Context, studentID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"student_id": studentID}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetProjection(bson.M{"job_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := []primitive.ObjectID{}
	for cur.Next(ctx) {
		var f models.Favorite
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		ids = append(ids, f.JobID)
	}
	return ids, cur.Err()
}
