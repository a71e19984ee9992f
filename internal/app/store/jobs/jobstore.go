package jobstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/paging"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound covers both a missing job and a job the caller does not own.
var ErrNotFound = apierr.NotFound("job not found")

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("jobs")}
}

// Create inserts j for companyID. New jobs are active and not featured.
func (s *Store) Create(ctx context.Context, companyID primitive.ObjectID, j models.Job) (models.Job, error) {
	now := time.Now().UTC()
	j.ID = primitive.NewObjectID()
	j.CompanyID = companyID
	j.IsActive = true
	j.IsFeatured = false
	j.CreatedAt = now
	j.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, j); err != nil {
		return models.Job{}, err
	}
	return j, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var j models.Job
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// GetOwned loads a job only if companyID owns it.
func (s *Store) GetOwned(ctx context.Context, id, companyID primitive.ObjectID) (*models.Job, error) {
	var j models.Job
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "company_id": companyID}).Decode(&j); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// GetMany loads jobs keyed by id. Missing ids are absent from the map.
func (s *Store) GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Job, error) {
	out := make(map[primitive.ObjectID]models.Job, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	jobs, err := s.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
	if err != nil {
		return nil, err
	}
	for _, j := range jobs {
		out[j.ID] = j
	}
	return out, nil
}

// ListFilter narrows the public listing. Location and Search are
// case-insensitive substrings; Search matches title or description.
type ListFilter struct {
	Type     string
	Location string
	Search   string
}

// ActiveQuery builds the filter for active jobs matching f.
func ActiveQuery(f ListFilter) bson.M {
	q := bson.M{"is_active": true}
	if f.Type != "" {
		q["type"] = f.Type
	}
	if f.Location != "" {
		q["location"] = contains(f.Location)
	}
	if f.Search != "" {
		q["$or"] = bson.A{
			bson.M{"title": contains(f.Search)},
			bson.M{"description": contains(f.Search)},
		}
	}
	return q
}

func contains(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// List returns one page of active jobs matching f, newest first, and the
// total number of matches.
func (s *Store) List(ctx context.Context, f ListFilter, pg paging.Page) ([]models.Job, int64, error) {
	q := ActiveQuery(f)
	total, err := s.c.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	jobs, err := s.find(ctx, q, options.Find().
		SetSort(newestFirst).
		SetSkip(pg.Skip()).
		SetLimit(int64(pg.Limit)))
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListByCompany returns every job of companyID, active or not, newest first.
func (s *Store) ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Job, error) {
	return s.find(ctx, bson.M{"company_id": companyID}, options.Find().SetSort(newestFirst))
}

// ListAll returns every job, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Job, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
}

// FindActive returns up to limit active jobs that also satisfy extra,
// newest first. A nil extra means plain recency.
func (s *Store) FindActive(ctx context.Context, extra bson.M, limit int64) ([]models.Job, error) {
	q := bson.M{"is_active": true}
	for k, v := range extra {
		q[k] = v
	}
	return s.find(ctx, q, options.Find().SetSort(newestFirst).SetLimit(limit))
}

func (s *Store) find(ctx context.Context, q bson.M, opts *options.FindOptions) ([]models.Job, error) {
	if opts == nil {
		opts = options.Find()
	}
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Job{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Patch holds the fields a company may change. Nil fields are left alone;
// ClearDeadline removes the deadline.
type Patch struct {
	Title         *string
	Type          *string
	Description   *string
	Requirements  *string
	Location      *string
	Salary        *string
	Deadline      *time.Time
	ClearDeadline bool
	IsActive      *bool
}

func (p Patch) update() bson.M {
	set := bson.M{"updated_at": time.Now().UTC()}
	put := func(k string, v *string) {
		if v != nil {
			set[k] = *v
		}
	}
	put("title", p.Title)
	put("type", p.Type)
	put("description", p.Description)
	put("requirements", p.Requirements)
	put("location", p.Location)
	put("salary", p.Salary)
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}
	u := bson.M{"$set": set}
	switch {
	case p.ClearDeadline:
		u["$unset"] = bson.M{"deadline": ""}
	case p.Deadline != nil:
		set["deadline"] = p.Deadline.UTC()
	}
	return u
}

// UpdateOwned merges p into the job if companyID owns it.
func (s *Store) UpdateOwned(ctx context.Context, id, companyID primitive.ObjectID, p Patch) (*models.Job, error) {
	var j models.Job
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "company_id": companyID},
		p.update(),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&j)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// DeleteOwned hard-deletes the job if companyID owns it.
func (s *Store) DeleteOwned(ctx context.Context, id, companyID primitive.ObjectID) error {
	return s.deleteOne(ctx, bson.M{"_id": id, "company_id": companyID})
}

// Delete hard-deletes the job regardless of owner.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteOne(ctx, bson.M{"_id": id})
}

func (s *Store) deleteOne(ctx context.Context, q bson.M) error {
	res, err := s.c.DeleteOne(ctx, q)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFeatured flips is_featured in one atomic update.
func (s *Store) ToggleFeatured(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"is_featured": bson.M{"$not": bson.A{"$is_featured"}},
			"updated_at":  time.Now().UTC(),
		}}},
	}
	var j models.Job
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&j)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// DeleteExpired removes every job whose deadline is strictly before now.
// Jobs without a deadline are never removed.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"deadline": bson.M{"$lt": now.UTC()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountActive counts jobs with is_active=true.
func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"is_active": true})
}
