// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/fresherlink/internal/app/system/ratelimit"
	"github.com/dalemusser/fresherlink/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Background is filled in by Startup and torn down by Shutdown. It is a
	// pointer so later hooks, which receive DBDeps by value, see it.
	Background *Background
}

// Background holds the long-lived helpers that own goroutines.
type Background struct {
	LoginLimiter *ratelimit.LoginLimiter
	JobCleanup   *workers.JobCleanup // nil when the sweep is disabled
}
