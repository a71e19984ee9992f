// internal/app/features/account/handler.go
package account

import (
	"time"

	profilestore "github.com/dalemusser/fresherlink/internal/app/store/profiles"
	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"github.com/dalemusser/fresherlink/internal/app/system/auditlog"
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/app/system/ratelimit"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves registration, login and the current-user endpoint.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Tokens   auth.TokenIssuer
	Limiter  *ratelimit.LoginLimiter // nil disables login rate limiting
	AuditLog *auditlog.Logger

	users    *userstore.Store
	profiles *profilestore.Store
}

func NewHandler(
	db *mongo.Database,
	tokens auth.TokenIssuer,
	limiter *ratelimit.LoginLimiter,
	audit *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Tokens:   tokens,
		Limiter:  limiter,
		AuditLog: audit,
		users:    userstore.New(db),
		profiles: profilestore.New(db),
	}
}

// sessionResponse is returned by register and login.
type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// meResponse is the current user plus their profile, if they have one.
type meResponse struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
}

func (h *Handler) issue(u *models.User) (sessionResponse, error) {
	tok, exp, err := h.Tokens.Issue(auth.SessionUser{ID: u.ID.Hex(), Email: u.Email, Role: u.Role})
	if err != nil {
		return sessionResponse{}, err
	}
	return sessionResponse{Token: tok, ExpiresAt: exp.UTC(), User: u}, nil
}
