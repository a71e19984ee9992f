// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework side (ports, TLS, logging, CORS, body limits); everything the
// job board itself needs lives here and is passed to every lifecycle hook.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer tokens
	TokenSecret string        // HMAC / securecookie key (must be strong in production)
	TokenFormat string        // "jwt" or "securecookie"
	TokenTTL    time.Duration // lifetime of an issued token
	TokenIssuer string        // JWT "iss" claim

	// Admin bootstrap; both blank disables it
	AdminEmail    string
	AdminPassword string

	// Login throttling per client IP and per email
	LoginRateLimit  int
	LoginRateWindow time.Duration

	// Background expired-job sweep; zero disables it
	JobCleanupInterval time.Duration

	// Context deadlines handlers put on store calls
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	// Audit logging destinations: all, db, log or off
	AuditLogAuth  string
	AuditLogAdmin string
}
