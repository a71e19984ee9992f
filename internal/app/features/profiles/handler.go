// internal/app/features/profiles/handler.go
package profiles

import (
	profilestore "github.com/dalemusser/fresherlink/internal/app/store/profiles"
	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the caller's profile and public profile lookups.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger

	users    *userstore.Store
	profiles *profilestore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		users:    userstore.New(db),
		profiles: profilestore.New(db),
	}
}
