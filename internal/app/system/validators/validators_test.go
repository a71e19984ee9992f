package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/fresherlink/internal/app/system/validators"
	"github.com/dalemusser/fresherlink/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJobsValidator_RejectsUnknownType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	_, err := db.Collection("jobs").InsertOne(ctx, bson.M{
		"company_id":  primitive.NewObjectID(),
		"title":       "Backend Intern",
		"type":        "part-time",
		"description": "x",
		"is_active":   true,
		"is_featured": false,
		"created_at":  time.Now(),
	})
	if err == nil {
		t.Fatal("expected validator to reject job type outside the enum")
	}

	_, err = db.Collection("jobs").InsertOne(ctx, bson.M{
		"company_id":  primitive.NewObjectID(),
		"title":       "Backend Intern",
		"type":        "internship",
		"description": "x",
		"is_active":   true,
		"is_featured": false,
		"created_at":  time.Now(),
	})
	if err != nil {
		t.Fatalf("valid job rejected: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := validators.EnsureAll(ctx, db); err != nil {
			t.Fatalf("EnsureAll run %d: %v", i+1, err)
		}
	}
}
