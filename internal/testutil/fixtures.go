package testutil

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the password of every fixture user.
const DefaultPassword = "password123"

// WithChiURLParam adds a chi URL parameter to the request context.
// Calling it again on the same request adds to the existing parameters.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

var (
	hashOnce      sync.Once
	hashedDefault string
	hashErr       error
)

func (f *Fixtures) passwordHash() string {
	hashOnce.Do(func() {
		var b []byte
		b, hashErr = bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
		hashedDefault = string(b)
	})
	if hashErr != nil {
		f.t.Fatalf("hash password: %v", hashErr)
	}
	return hashedDefault
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert into %s: %v", coll, err)
	}
}

// CreateUser inserts an active user with DefaultPassword.
func (f *Fixtures) CreateUser(ctx context.Context, email, role string) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: f.passwordHash(),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateStudent inserts a student user and its profile.
func (f *Fixtures) CreateStudent(ctx context.Context, email, name string, skills ...string) models.User {
	f.t.Helper()
	u := f.CreateUser(ctx, email, models.RoleStudent)
	if skills == nil {
		skills = []string{}
	}
	now := time.Now().UTC()
	f.insert(ctx, "profiles", models.Profile{
		ID:     primitive.NewObjectID(),
		UserID: u.ID,
		Kind:   models.ProfileKindStudent,
		Student: &models.StudentProfile{
			Name:   name,
			NameCI: text.Fold(name),
			Skills: skills,
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	return u
}

// CreateCompany inserts a company user and its profile.
func (f *Fixtures) CreateCompany(ctx context.Context, email, companyName string) models.User {
	f.t.Helper()
	u := f.CreateUser(ctx, email, models.RoleCompany)
	now := time.Now().UTC()
	f.insert(ctx, "profiles", models.Profile{
		ID:     primitive.NewObjectID(),
		UserID: u.ID,
		Kind:   models.ProfileKindCompany,
		Company: &models.CompanyProfile{
			CompanyName:   companyName,
			CompanyNameCI: text.Fold(companyName),
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	return u
}

// CreateAdmin inserts an admin user (admins have no profile).
func (f *Fixtures) CreateAdmin(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, email, models.RoleAdmin)
}

// CreateJob inserts j for companyID as given. Empty Type and Description
// get defaults.
func (f *Fixtures) CreateJob(ctx context.Context, companyID primitive.ObjectID, j models.Job) models.Job {
	f.t.Helper()
	now := time.Now().UTC()
	j.ID = primitive.NewObjectID()
	j.CompanyID = companyID
	if j.Type == "" {
		j.Type = models.JobTypeInternship
	}
	if j.Description == "" {
		j.Description = "A role at " + j.Title
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	j.UpdatedAt = now
	f.insert(ctx, "jobs", j)
	return j
}

// CreateActiveJob inserts an active job titled title, created at createdAt.
func (f *Fixtures) CreateActiveJob(ctx context.Context, companyID primitive.ObjectID, title string, createdAt time.Time) models.Job {
	f.t.Helper()
	return f.CreateJob(ctx, companyID, models.Job{Title: title, IsActive: true, CreatedAt: createdAt})
}

// CreateApplication inserts a pending application.
func (f *Fixtures) CreateApplication(ctx context.Context, studentID, jobID primitive.ObjectID) models.Application {
	f.t.Helper()
	now := time.Now().UTC()
	a := models.Application{
		ID:        primitive.NewObjectID(),
		StudentID: studentID,
		JobID:     jobID,
		Status:    models.ApplicationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "applications", a)
	return a
}

// CreatePost inserts a post with caption by authorID.
func (f *Fixtures) CreatePost(ctx context.Context, authorID primitive.ObjectID, caption string) models.Post {
	f.t.Helper()
	now := time.Now().UTC()
	p := models.Post{
		ID:        primitive.NewObjectID(),
		AuthorID:  authorID,
		Caption:   caption,
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "posts", p)
	return p
}

// Now is the current time truncated to milliseconds, the precision Mongo
// stores, so round-tripped times compare equal.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
