package userstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/normalize"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = apierr.Conflict("a user with this email already exists")
	ErrNotFound       = apierr.NotFound("user not found")
	errBadRole        = apierr.BadRequest(`role must be "student"|"company"|"admin"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail looks up a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": normalize.Email(email)})
}

// Create inserts u after normalizing its email. The caller supplies the
// password hash and flags; Create assigns the id and timestamps.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetMany loads the users in ids keyed by id. Missing ids are absent.
func (s *Store) GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := s.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// ListFilter narrows List. Search is an email substring.
type ListFilter struct {
	Search string
	Role   string
}

// List returns users matching f, newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.User, error) {
	q := bson.M{}
	if f.Role != "" {
		q["role"] = f.Role
	}
	if f.Search != "" {
		q["email"] = primitive.Regex{Pattern: regexp.QuoteMeta(normalize.Email(f.Search)), Options: "i"}
	}
	return s.find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// Recent returns the n most recently created users.
func (s *Store) Recent(ctx context.Context, n int64) ([]models.User, error) {
	return s.find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(n))
}

func (s *Store) find(ctx context.Context, q bson.M, opts *options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByRole counts users holding role.
func (s *Store) CountByRole(ctx context.Context, role string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"role": role})
}

// IDsExceptRole returns the ids of every user whose role is not role.
func (s *Store) IDsExceptRole(ctx context.Context, role string) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"role": bson.M{"$ne": role}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		ids = append(ids, row.ID)
	}
	return ids, cur.Err()
}

// SetStatus applies whichever of isActive and isVerified are non-nil and
// returns the updated user. With both nil it returns the user unchanged.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, isActive, isVerified *bool) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if isActive != nil {
		set["is_active"] = *isActive
	}
	if isVerified != nil {
		set["is_verified"] = *isVerified
	}
	if len(set) == 1 {
		return s.GetByID(ctx, id)
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Delete removes the user record only. Jobs, posts, profile and
// applications owned by the user are left in place.
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

// EnsureAdmin creates an active, verified admin with email if no user has
// that email yet. It never changes an existing user.
func (s *Store) EnsureAdmin(ctx context.Context, email, passwordHash string) (created bool, err error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$setOnInsert": bson.M{
			"_id":           primitive.NewObjectID(),
			"password_hash": passwordHash,
			"role":          models.RoleAdmin,
			"is_verified":   true,
			"is_active":     true,
			"created_at":    now,
			"updated_at":    now,
		}},
		options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}
