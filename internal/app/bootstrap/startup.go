// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	jobstore "github.com/dalemusser/fresherlink/internal/app/store/jobs"
	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/app/system/ratelimit"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built: the
// bootstrap admin, the login limiter and the optional cleanup worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	configureTimeouts(appCfg, logger)

	if err := EnsureAdmin(ctx, deps.MongoDatabase, appCfg.AdminEmail, appCfg.AdminPassword, logger); err != nil {
		return err
	}

	deps.Background.LoginLimiter = ratelimit.NewLoginLimiter(appCfg.LoginRateLimit, appCfg.LoginRateWindow)
	deps.Background.JobCleanup = startJobCleanup(deps.MongoDatabase, appCfg, logger)
	return nil
}

// configureTimeouts applies the configured request deadlines. Zero values
// keep the package defaults.
func configureTimeouts(appCfg AppConfig, logger *zap.Logger) {
	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.TimeoutPing,
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})
	cur := timeouts.Current()
	logger.Info("request timeouts configured",
		zap.Duration("ping", cur.Ping),
		zap.Duration("short", cur.Short),
		zap.Duration("medium", cur.Medium),
		zap.Duration("long", cur.Long))
}

// EnsureAdmin creates the configured admin if no user has that email. An
// existing account is left untouched, whatever its role.
func EnsureAdmin(ctx context.Context, db *mongo.Database, email, password string, logger *zap.Logger) error {
	if email == "" {
		logger.Debug("no admin_email configured; skipping admin bootstrap")
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	created, err := userstore.New(db).EnsureAdmin(ctx, email, hash)
	if err != nil {
		logger.Error("ensure admin failed", zap.Error(err))
		return fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		logger.Info("bootstrap admin created", zap.String("email", email))
	}
	return nil
}

// startJobCleanup starts the expired-job sweep when an interval is set.
func startJobCleanup(db *mongo.Database, appCfg AppConfig, logger *zap.Logger) *workers.JobCleanup {
	if appCfg.JobCleanupInterval <= 0 {
		return nil
	}
	w := workers.NewJobCleanup(jobstore.New(db), logger, appCfg.JobCleanupInterval)
	w.Start()
	return w
}
