// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. Servers that don't support collMod validators are logged and
// skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("profiles", profilesSchema())
	ensure("jobs", jobsSchema())
	ensure("applications", applicationsSchema())
	ensure("notifications", notificationsSchema())
	ensure("posts", postsSchema())

	// Edge collections are guarded by their unique indexes.
	ensure("favorites", nil)
	ensure("post_likes", nil)
	ensure("follows", nil)
	ensure("audit_events", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if it was actually created.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	if exists, listErr := collectionExists(ctx, db, name); listErr == nil && exists {
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func commandErr(err error, codes []int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		for _, c := range codes {
			if ce.Code == c {
				return true
			}
		}
	}
	s := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErr(err, []int32{48}, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErr(err, []int32{59}, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErr(err, []int32{115}, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func enum(vals []string) bson.A {
	out := bson.A{}
	for _, v := range vals {
		out = append(out, v)
	}
	return out
}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "password_hash", "role", "is_active"},
			"properties": bson.M{
				"email":         bson.M{"bsonType": "string", "minLength": 3, "pattern": ".*@.*"},
				"password_hash": bson.M{"bsonType": "string", "minLength": 1},
				"role":          bson.M{"enum": enum(models.Roles)},
				"is_verified":   bson.M{"bsonType": "bool"},
				"is_active":     bson.M{"bsonType": "bool"},
			},
		},
	}
}

func profilesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "kind"},
			"properties": bson.M{
				"user_id": bson.M{"bsonType": "objectId"},
				"kind":    bson.M{"enum": bson.A{models.ProfileKindStudent, models.ProfileKindCompany}},
				"student": bson.M{"bsonType": bson.A{"object", "null"}},
				"company": bson.M{"bsonType": bson.A{"object", "null"}},
			},
		},
	}
}

func jobsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"company_id", "title", "type", "description", "is_active", "is_featured"},
			"properties": bson.M{
				"company_id":  bson.M{"bsonType": "objectId"},
				"title":       bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"type":        bson.M{"enum": enum(models.JobTypes)},
				"description": bson.M{"bsonType": "string", "minLength": 1},
				"deadline":    bson.M{"bsonType": bson.A{"date", "null"}},
				"is_active":   bson.M{"bsonType": "bool"},
				"is_featured": bson.M{"bsonType": "bool"},
			},
		},
	}
}

func applicationsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"student_id", "job_id", "status", "created_at"},
			"properties": bson.M{
				"student_id": bson.M{"bsonType": "objectId"},
				"job_id":     bson.M{"bsonType": "objectId"},
				"status":     bson.M{"enum": enum(models.ApplicationStatuses)},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func notificationsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"recipient_id", "message", "type", "is_read", "created_at"},
			"properties": bson.M{
				"recipient_id": bson.M{"bsonType": "objectId"},
				"message":      bson.M{"bsonType": "string", "minLength": 1},
				"type":         bson.M{"enum": enum(models.NotificationTypes)},
				"is_read":      bson.M{"bsonType": "bool"},
			},
		},
	}
}

func postsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"author_id", "like_count", "created_at"},
			"properties": bson.M{
				"author_id":  bson.M{"bsonType": "objectId"},
				"like_count": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"media": bson.M{
					"bsonType": bson.A{"object", "null"},
					"properties": bson.M{
						"type": bson.M{"enum": bson.A{models.MediaImage, models.MediaVideo}},
					},
				},
			},
		},
	}
}
