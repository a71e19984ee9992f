package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dalemusser/fresherlink/internal/app/system/indexes"
	"github.com/dalemusser/fresherlink/internal/app/system/validators"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTestURI = "mongodb://localhost:27017"

// TestContext returns a context with a deadline suited to a single test.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SetupTestDB connects to MongoDB (FRESHERLINK_TEST_MONGO_URI, else
// localhost) and returns a fresh database with the production schema
// applied. The database is dropped when the test ends. The test is skipped
// when no server is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("FRESHERLINK_TEST_MONGO_URI")
	if uri == "" {
		uri = defaultTestURI
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(2*time.Second))
	if err != nil {
		t.Skipf("mongo unavailable (%s): %v", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("mongo unavailable (%s): %v", uri, err)
	}

	db := client.Database("fresherlink_test_" + primitive.NewObjectID().Hex())

	schemaCtx, schemaCancel := TestContext()
	defer schemaCancel()
	if err := validators.EnsureAll(schemaCtx, db); err != nil {
		t.Fatalf("validators: %v", err)
	}
	if err := indexes.EnsureAll(schemaCtx, db); err != nil {
		t.Fatalf("indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

// RejectInserts replaces coll's validator with one no document satisfies,
// so every later write to it fails. Tests use it to break a collaborator.
func RejectInserts(t *testing.T, db *mongo.Database, coll string) {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()
	cmd := bson.D{
		{Key: "collMod", Value: coll},
		{Key: "validator", Value: bson.M{"_id": bson.M{"$exists": false}}},
		{Key: "validationLevel", Value: "strict"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		t.Fatalf("collMod %s: %v", coll, err)
	}
}
