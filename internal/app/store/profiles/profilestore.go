package profilestore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/normalize"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound = apierr.NotFound("profile not found")
	// ErrFieldNotApplicable is returned when clearing a field the profile's
	// shape does not have, or a field that cannot be cleared.
	ErrFieldNotApplicable = apierr.BadRequest("field does not apply to this profile")
	errBadKind            = apierr.BadRequest(`kind must be "student"|"company"`)
)

// Clearable reference fields.
const (
	FieldResume = "resume"
	FieldPhoto  = "photo"
	FieldLogo   = "logo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("profiles")}
}

// KindForRole maps a user role to its profile shape. Admins have none.
func KindForRole(role string) (string, bool) {
	switch role {
	case models.RoleStudent:
		return models.ProfileKindStudent, true
	case models.RoleCompany:
		return models.ProfileKindCompany, true
	}
	return "", false
}

// Empty builds a new profile of kind carrying only a display name.
func Empty(userID primitive.ObjectID, kind, name string) models.Profile {
	p := models.Profile{UserID: userID, Kind: kind}
	switch kind {
	case models.ProfileKindStudent:
		p.Student = &models.StudentProfile{Name: name, Skills: []string{}}
	case models.ProfileKindCompany:
		p.Company = &models.CompanyProfile{CompanyName: name}
	}
	return p
}

// GetByUserID loads the profile owned by userID.
func (s *Store) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetMany loads the profiles of ids keyed by user id. Users without a
// profile are absent from the map.
func (s *Store) GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Profile, error) {
	out := make(map[primitive.ObjectID]models.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"user_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var p models.Profile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out[p.UserID] = p
	}
	return out, cur.Err()
}

// Upsert replaces the whole profile for p.UserID, normalizing names and
// skills. Only the shape named by p.Kind is stored.
func (s *Store) Upsert(ctx context.Context, p models.Profile) (models.Profile, error) {
	switch p.Kind {
	case models.ProfileKindStudent:
		if p.Student == nil {
			p.Student = &models.StudentProfile{}
		}
		p.Company = nil
		p.Student.Name = normalize.Name(p.Student.Name)
		p.Student.NameCI = text.Fold(p.Student.Name)
		p.Student.Skills = normalize.Skills(p.Student.Skills)
	case models.ProfileKindCompany:
		if p.Company == nil {
			p.Company = &models.CompanyProfile{}
		}
		p.Student = nil
		p.Company.CompanyName = normalize.Name(p.Company.CompanyName)
		p.Company.CompanyNameCI = text.Fold(p.Company.CompanyName)
	default:
		return models.Profile{}, errBadKind
	}

	now := time.Now().UTC()
	p.UpdatedAt = now

	existing, err := s.GetByUserID(ctx, p.UserID)
	switch {
	case err == nil:
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		p.ID = primitive.NewObjectID()
		p.CreatedAt = now
	default:
		return models.Profile{}, err
	}

	_, err = s.c.ReplaceOne(ctx, bson.M{"user_id": p.UserID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// ClearField nulls one file reference on the user's profile.
func (s *Store) ClearField(ctx context.Context, userID primitive.ObjectID, field string) (*models.Profile, error) {
	var kind, path string
	switch field {
	case FieldResume:
		kind, path = models.ProfileKindStudent, "student.resume"
	case FieldPhoto:
		kind, path = models.ProfileKindStudent, "student.photo"
	case FieldLogo:
		kind, path = models.ProfileKindCompany, "company.logo"
	default:
		return nil, ErrFieldNotApplicable
	}

	var p models.Profile
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "kind": kind},
		bson.M{"$set": bson.M{path: nil, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, gerr := s.GetByUserID(ctx, userID); gerr == nil {
				return nil, ErrFieldNotApplicable
			}
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SearchByName finds profiles whose student name or company name contains
// q, ignoring case and diacritics.
func (s *Store) SearchByName(ctx context.Context, q string, limit int64) ([]models.Profile, error) {
	folded := text.Fold(q)
	if folded == "" {
		return []models.Profile{}, nil
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(folded)}
	cur, err := s.c.Find(ctx,
		bson.M{"$or": bson.A{
			bson.M{"student.name_ci": re},
			bson.M{"company.company_name_ci": re},
		}},
		options.Find().SetLimit(limit).SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Profile{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DisplayName resolves the name shown for a user: the profile's name, or
// the fallback (normally the email) when the profile has none.
func DisplayName(p *models.Profile, fallback string) string {
	if n := p.DisplayName(); n != "" {
		return n
	}
	return fallback
}
