package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/fresherlink/internal/app/store/audit"
	"github.com/dalemusser/fresherlink/internal/app/system/auditlog"
	"github.com/dalemusser/fresherlink/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestLogger_NilIsNoop(t *testing.T) {
	var l *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	l.LoginSuccess(ctx, httptest.NewRequest("POST", "/auth/login", nil), primitive.NewObjectID())
}

func TestLogger_RespectsDestinations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := audit.New(db)

	l := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: auditlog.DestOff, Admin: auditlog.DestDB})
	r := httptest.NewRequest("DELETE", "/admin/users/x", nil)
	r.Header.Set("X-Real-IP", "198.51.100.7")

	actor, target := primitive.NewObjectID(), primitive.NewObjectID()
	l.LoginSuccess(ctx, r, target)
	l.UserDeleted(ctx, r, actor, target, "gone@example.com")

	got, err := store.Query(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d events, want only the admin one", len(got))
	}
	e := got[0]
	if e.EventType != audit.EventUserDeleted || e.IP != "198.51.100.7" || e.Details["email"] != "gone@example.com" {
		t.Errorf("unexpected event %+v", e)
	}
	if e.ActorID == nil || *e.ActorID != actor {
		t.Errorf("actor = %v, want %v", e.ActorID, actor)
	}
}

func TestLogger_UserStatusChangedDetails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := audit.New(db)
	l := auditlog.New(store, zap.NewNop(), auditlog.Config{Admin: auditlog.DestAll})

	active := false
	l.UserStatusChanged(ctx, httptest.NewRequest("PATCH", "/", nil), primitive.NewObjectID(), primitive.NewObjectID(), &active, nil)

	got, err := store.Query(ctx, audit.QueryFilter{EventType: audit.EventUserStatusChanged})
	if err != nil || len(got) != 1 {
		t.Fatalf("Query: %v, %d events", err, len(got))
	}
	if got[0].Details["is_active"] != "false" {
		t.Errorf("is_active detail = %q", got[0].Details["is_active"])
	}
	if _, ok := got[0].Details["is_verified"]; ok {
		t.Error("unset flag should not appear in details")
	}
}
