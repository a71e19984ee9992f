// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountfeature "github.com/dalemusser/fresherlink/internal/app/features/account"
	adminfeature "github.com/dalemusser/fresherlink/internal/app/features/admin"
	applicationsfeature "github.com/dalemusser/fresherlink/internal/app/features/applications"
	favoritesfeature "github.com/dalemusser/fresherlink/internal/app/features/favorites"
	healthfeature "github.com/dalemusser/fresherlink/internal/app/features/health"
	jobsfeature "github.com/dalemusser/fresherlink/internal/app/features/jobs"
	notificationsfeature "github.com/dalemusser/fresherlink/internal/app/features/notifications"
	postsfeature "github.com/dalemusser/fresherlink/internal/app/features/posts"
	profilesfeature "github.com/dalemusser/fresherlink/internal/app/features/profiles"
	socialfeature "github.com/dalemusser/fresherlink/internal/app/features/social"
	"github.com/dalemusser/fresherlink/internal/app/store/audit"
	notificationstore "github.com/dalemusser/fresherlink/internal/app/store/notifications"
	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/auditlog"
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/app/system/notify"
	"github.com/dalemusser/fresherlink/internal/app/system/recommend"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version is reported by /health. Release builds set it with -ldflags.
var Version = "dev"

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. FresherLink builds the token issuer,
// loads the caller on every request, and mounts one router per feature.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenIssuer(appCfg.TokenFormat, appCfg.TokenSecret, appCfg.TokenIssuer, appCfg.TokenTTL)
	if err != nil {
		logger.Error("token issuer init failed", zap.Error(err))
		return nil, err
	}

	// The fetcher reloads the user on every request, so suspension and
	// deletion take effect immediately rather than at token expiry.
	am := auth.NewManager(tokens, logger)
	am.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	db := deps.MongoDatabase
	notifier := notify.New(notificationstore.New(db), logger)
	audits := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	limiter := deps.Background.LoginLimiter

	r := chi.NewRouter()

	// Global auth middleware: loads the bearer token's user into context
	// when one is presented. Route groups decide what they require.
	r.Use(am.LoadSessionUser)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierr.Message(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apierr.Message(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, Version, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	accountHandler := accountfeature.NewHandler(db, tokens, limiter, audits, logger)
	r.Mount("/auth", accountfeature.Routes(accountHandler, am))

	profilesHandler := profilesfeature.NewHandler(db, logger)
	r.Mount("/profile", profilesfeature.Routes(profilesHandler, am))

	jobsHandler := jobsfeature.NewHandler(db, recommend.KeywordMatcher{}, logger)
	r.Mount("/jobs", jobsfeature.Routes(jobsHandler, am))

	applicationsHandler := applicationsfeature.NewHandler(db, notifier, logger)
	r.Mount("/applications", applicationsfeature.Routes(applicationsHandler, am))

	favoritesHandler := favoritesfeature.NewHandler(db, logger)
	r.Mount("/favorites", favoritesfeature.Routes(favoritesHandler, am))

	notificationsHandler := notificationsfeature.NewHandler(db, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler, am))

	socialHandler := socialfeature.NewHandler(db, notifier, logger)
	r.Mount("/users", socialfeature.Routes(socialHandler, am))

	postsHandler := postsfeature.NewHandler(db, notifier, logger)
	r.Mount("/posts", postsfeature.Routes(postsHandler, am))

	adminHandler := adminfeature.NewHandler(db, notifier, audits, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler, am))

	return r, nil
}
