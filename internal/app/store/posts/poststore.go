package poststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/paging"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound        = apierr.NotFound("post not found")
	ErrCommentNotFound = apierr.NotFound("comment not found")
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sentinel
	}
	return err
}

// Create inserts a post by authorID with no likes or comments.
func (s *Store) Create(ctx context.Context, authorID primitive.ObjectID, caption string, media *models.Media) (models.Post, error) {
	now := time.Now().UTC()
	p := models.Post{
		ID:        primitive.NewObjectID(),
		AuthorID:  authorID,
		Caption:   caption,
		Media:     media,
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFound(err, ErrNotFound)
	}
	return &p, nil
}

// List returns one page of all posts, newest first, and the total count.
func (s *Store) List(ctx context.Context, pg paging.Page) ([]models.Post, int64, error) {
	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	posts, err := s.find(ctx, bson.M{}, options.Find().
		SetSort(newestFirst).
		SetSkip(pg.Skip()).
		SetLimit(int64(pg.Limit)))
	return posts, total, err
}

// ListByAuthor returns every post of authorID, newest first.
func (s *Store) ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	return s.find(ctx, bson.M{"author_id": authorID}, options.Find().SetSort(newestFirst))
}

func (s *Store) find(ctx context.Context, q bson.M, opts *options.FindOptions) ([]models.Post, error) {
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Post{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateCaption changes the caption if authorID wrote the post.
func (s *Store) UpdateCaption(ctx context.Context, id, authorID primitive.ObjectID, caption string) (*models.Post, error) {
	var p models.Post
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "author_id": authorID},
		bson.M{"$set": bson.M{"caption": caption, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, notFound(err, ErrNotFound)
	}
	return &p, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddComment appends a comment and returns it.
func (s *Store) AddComment(ctx context.Context, postID, userID primitive.ObjectID, text string) (models.Comment, error) {
	c := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": c}})
	if err != nil {
		return models.Comment{}, err
	}
	if res.MatchedCount == 0 {
		return models.Comment{}, ErrNotFound
	}
	return c, nil
}

// RemoveComment pulls one comment from the post.
func (s *Store) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": postID, "comments._id": commentID},
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, gerr := s.GetByID(ctx, postID); gerr != nil {
			return gerr
		}
		return ErrCommentNotFound
	}
	return nil
}

// IncLikes adjusts like_count by delta, never below zero.
func (s *Store) IncLikes(ctx context.Context, postID primitive.ObjectID, delta int64) (int64, error) {
	q := bson.M{"_id": postID}
	if delta < 0 {
		q["like_count"] = bson.M{"$gte": -delta}
	}
	var p models.Post
	err := s.c.FindOneAndUpdate(ctx, q,
		bson.M{"$inc": bson.M{"like_count": delta}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"like_count": 1}),
	).Decode(&p)
	if err != nil {
		return 0, notFound(err, ErrNotFound)
	}
	return p.LikeCount, nil
}

// FindComment returns the comment with id from p, if present.
func FindComment(p *models.Post, id primitive.ObjectID) (*models.Comment, bool) {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i], true
		}
	}
	return nil, false
}
