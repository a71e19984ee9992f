package applicationstore

import (
	"context"
	"errors"
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
	// ErrDuplicate means the student already applied to the job.
	ErrDuplicate = apierr.Conflict("you have already applied to this job")
	ErrNotFound  = apierr.NotFound("application not found")
	errBadStatus = apierr.BadRequest(`status must be "shortlisted"|"rejected"`)
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("applications")}
}

// Create inserts a pending application. Uniqueness of (student, job) is
// enforced by the unique index, so of two concurrent calls exactly one
// succeeds and the other gets ErrDuplicate.
func (s *Store) Create(ctx context.Context, studentID, jobID primitive.ObjectID) (models.Application, error) {
	now := time.Now().UTC()
	a := models.Application{
		ID:        primitive.NewObjectID(),
		StudentID: studentID,
		JobID:     jobID,
		Status:    models.ApplicationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Application{}, ErrDuplicate
		}
		return models.Application{}, err
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	var a models.Application
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByStudent returns the student's applications, newest first.
func (s *Store) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Application, error) {
	return s.find(ctx, bson.M{"student_id": studentID})
}

// ListByJob returns the job's applications, newest first.
func (s *Store) ListByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	return s.find(ctx, bson.M{"job_id": jobID})
}

func (s *Store) find(ctx context.Context, q bson.M) ([]models.Application, error) {
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Application{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus moves the application to status, which must be shortlisted or
// rejected. Either may follow the other.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Application, error) {
	if !models.IsSettableStatus(status) {
		return nil, errBadStatus
	}
	var a models.Application
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
