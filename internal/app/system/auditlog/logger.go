// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/fresherlink/internal/app/store/audit"
	"github.com/dalemusser/fresherlink/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destinations for a category: "all" (MongoDB + zap), "db", "log" or "off".
const (
	DestAll = "all"
	DestDB  = "db"
	DestLog = "log"
	DestOff = "off"
)

// Config picks a destination per event category.
type Config struct {
	Auth  string
	Admin string
}

// Logger writes audit events to the audit store and to zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) logToZap(e audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", e.Category),
		zap.String("event_type", e.EventType),
		zap.Bool("success", e.Success),
		zap.String("ip", e.IP),
	}
	if e.UserID != nil {
		fields = append(fields, zap.String("user_id", e.UserID.Hex()))
	}
	if e.ActorID != nil {
		fields = append(fields, zap.String("actor_id", e.ActorID.Hex()))
	}
	if e.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", e.FailureReason))
	}
	for k, v := range e.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if e.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records e according to the category's destination. A nil Logger is
// a no-op so handlers under test can run without one. Store failures are
// logged and never returned: auditing must not fail the audited action.
func (l *Logger) Log(ctx context.Context, e audit.Event) {
	if l == nil {
		return
	}

	dest := DestAll
	switch e.Category {
	case audit.CategoryAuth:
		dest = l.config.Auth
	case audit.CategoryAdmin:
		dest = l.config.Admin
	}

	switch dest {
	case DestOff:
		return
	case DestLog:
		l.logToZap(e)
		return
	case DestDB:
	default:
		l.logToZap(e)
	}

	if err := l.store.Log(ctx, e); err != nil {
		l.zapLog.Error("failed to store audit event",
			zap.Error(err),
			zap.String("event_type", e.EventType))
	}
}

func request(e audit.Event, r *http.Request) audit.Event {
	e.IP = ratelimit.ClientIP(r)
	e.UserAgent = r.UserAgent()
	return e
}

// --- Authentication events ---

func (l *Logger) Registered(ctx context.Context, r *http.Request, userID primitive.ObjectID, role string) {
	l.Log(ctx, request(audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventRegistered,
		UserID:    &userID,
		Success:   true,
		Details:   map[string]string{"role": role},
	}, r))
}

func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	l.Log(ctx, request(audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		Success:   true,
	}, r))
}

func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, email string) {
	l.Log(ctx, request(audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedUserNotFound,
		FailureReason: "user not found",
		Details:       map[string]string{"email": email},
	}, r))
}

func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	l.Log(ctx, request(audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedWrongPassword,
		UserID:        &userID,
		FailureReason: "wrong password",
	}, r))
}

func (l *Logger) LoginFailedUserSuspended(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	l.Log(ctx, request(audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedUserSuspended,
		UserID:        &userID,
		FailureReason: "account suspended",
	}, r))
}

func (l *Logger) LoginFailedRateLimit(ctx context.Context, r *http.Request, email, reason string) {
	l.Log(ctx, request(audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedRateLimit,
		FailureReason: reason,
		Details:       map[string]string{"email": email},
	}, r))
}

// --- Admin events ---

func (l *Logger) admin(ctx context.Context, r *http.Request, eventType string, actorID primitive.ObjectID, target *primitive.ObjectID, details map[string]string) {
	l.Log(ctx, request(audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   &actorID,
		UserID:    target,
		Success:   true,
		Details:   details,
	}, r))
}

// UserStatusChanged records an admin toggling isActive/isVerified.
// Only the flags that were set appear in details.
func (l *Logger) UserStatusChanged(ctx context.Context, r *http.Request, actorID, userID primitive.ObjectID, isActive, isVerified *bool) {
	d := map[string]string{}
	if isActive != nil {
		d["is_active"] = strconv.FormatBool(*isActive)
	}
	if isVerified != nil {
		d["is_verified"] = strconv.FormatBool(*isVerified)
	}
	l.admin(ctx, r, audit.EventUserStatusChanged, actorID, &userID, d)
}

func (l *Logger) UserDeleted(ctx context.Context, r *http.Request, actorID, userID primitive.ObjectID, email string) {
	l.admin(ctx, r, audit.EventUserDeleted, actorID, &userID, map[string]string{"email": email})
}

func (l *Logger) JobDeleted(ctx context.Context, r *http.Request, actorID, jobID primitive.ObjectID) {
	l.admin(ctx, r, audit.EventJobDeleted, actorID, nil, map[string]string{"job_id": jobID.Hex()})
}

func (l *Logger) JobFeatureToggled(ctx context.Context, r *http.Request, actorID, jobID primitive.ObjectID, featured bool) {
	l.admin(ctx, r, audit.EventJobFeatureToggled, actorID, nil, map[string]string{
		"job_id":      jobID.Hex(),
		"is_featured": strconv.FormatBool(featured),
	})
}

func (l *Logger) ExpiredJobsPurged(ctx context.Context, r *http.Request, actorID primitive.ObjectID, deleted int64) {
	l.admin(ctx, r, audit.EventExpiredJobsPurged, actorID, nil, map[string]string{
		"deleted": strconv.FormatInt(deleted, 10),
	})
}

func (l *Logger) PostDeleted(ctx context.Context, r *http.Request, actorID, postID, authorID primitive.ObjectID) {
	l.admin(ctx, r, audit.EventPostDeleted, actorID, &authorID, map[string]string{"post_id": postID.Hex()})
}

func (l *Logger) CommentDeleted(ctx context.Context, r *http.Request, actorID, postID, commentID primitive.ObjectID) {
	l.admin(ctx, r, audit.EventCommentDeleted, actorID, nil, map[string]string{
		"post_id":    postID.Hex(),
		"comment_id": commentID.Hex(),
	})
}

func (l *Logger) AnnouncementSent(ctx context.Context, r *http.Request, actorID primitive.ObjectID, recipients int) {
	l.admin(ctx, r, audit.EventAnnouncementSent, actorID, nil, map[string]string{
		"recipients": strconv.Itoa(recipients),
	})
}
