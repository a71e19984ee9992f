// internal/app/features/applications/handler.go
package applications

import (
	applicationstore "github.com/dalemusser/fresherlink/internal/app/store/applications"
	jobstore "github.com/dalemusser/fresherlink/internal/app/store/jobs"
	"github.com/dalemusser/fresherlink/internal/app/system/notify"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Notify *notify.Notifier
	Views  *viewdata.Resolver

	applications *applicationstore.Store
	jobs         *jobstore.Store
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		Notify:       notifier,
		Views:        viewdata.NewResolver(db),
		applications: applicationstore.New(db),
		jobs:         jobstore.New(db),
	}
}
