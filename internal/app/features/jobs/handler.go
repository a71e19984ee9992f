// internal/app/features/jobs/handler.go
package jobs

import (
	applicationstore "github.com/dalemusser/fresherlink/internal/app/store/applications"
	jobstore "github.com/dalemusser/fresherlink/internal/app/store/jobs"
	profilestore "github.com/dalemusser/fresherlink/internal/app/store/profiles"
	"github.com/dalemusser/fresherlink/internal/app/system/recommend"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the job catalog.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Matcher recommend.Matcher
	Views   *viewdata.Resolver

	jobs         *jobstore.Store
	applications *applicationstore.Store
	profiles     *profilestore.Store
}

// NewHandler wires the job handlers. A nil matcher selects the keyword
// heuristic.
func NewHandler(db *mongo.Database, matcher recommend.Matcher, logger *zap.Logger) *Handler {
	if matcher == nil {
		matcher = recommend.KeywordMatcher{}
	}
	return &Handler{
		DB:           db,
		Log:          logger,
		Matcher:      matcher,
		Views:        viewdata.NewResolver(db),
		jobs:         jobstore.New(db),
		applications: applicationstore.New(db),
		profiles:     profilestore.New(db),
	}
}
