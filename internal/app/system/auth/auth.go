// Package auth carries the caller's identity through a request. Callers
// authenticate with a bearer token; LoadSessionUser resolves it into a
// SessionUser placed on the request context.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"go.uber.org/zap"
)

// SessionUser is the (id, role) pair a token carries, plus the email for
// logging.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *SessionUser) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// WithTestUser injects u into the request context, bypassing tokens.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(WithUser(r.Context(), u))
}

// UserFetcher re-reads a token's user so suspended and deleted accounts
// lose access before their tokens expire. It returns nil (and no error)
// when the account no longer exists or is inactive.
type UserFetcher interface {
	FetchActive(ctx context.Context, id string) (*SessionUser, error)
}

// Manager validates bearer tokens and guards routes.
type Manager struct {
	tokens  TokenIssuer
	fetcher UserFetcher
	log     *zap.Logger
}

// NewManager builds a Manager around a token issuer.
func NewManager(tokens TokenIssuer, logger *zap.Logger) *Manager {
	return &Manager{tokens: tokens, log: logger}
}

// Tokens returns the issuer used to mint tokens at login.
func (m *Manager) Tokens() TokenIssuer { return m.tokens }

// SetUserFetcher enables the per-request account check.
func (m *Manager) SetUserFetcher(f UserFetcher) { m.fetcher = f }

// LoadSessionUser puts the token's user into context when the request has a
// valid bearer token. Requests without one pass through anonymously;
// RequireSignedIn decides whether that is acceptable.
func (m *Manager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := BearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		u, err := m.tokens.Parse(raw)
		if err != nil {
			m.log.Debug("rejected bearer token", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		if m.fetcher != nil {
			fresh, err := m.fetcher.FetchActive(r.Context(), u.ID)
			if err != nil {
				m.log.Error("session user fetch failed", zap.Error(err), zap.String("user_id", u.ID))
				apierr.Message(w, http.StatusInternalServerError, "could not load session user")
				return
			}
			if fresh == nil {
				next.ServeHTTP(w, r)
				return
			}
			u = fresh
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// RequireSignedIn answers 401 unless LoadSessionUser found a user.
func (m *Manager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			apierr.Message(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole answers 401 for anonymous callers and 403 for callers whose
// role is not in allowed.
func (m *Manager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				apierr.Message(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				apierr.Message(w, http.StatusForbidden, "access denied for role "+u.Role)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
