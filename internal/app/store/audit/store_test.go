package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/fresherlink/internal/app/store/audit"
	"github.com/dalemusser/fresherlink/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_LogAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := audit.New(db)

	admin := primitive.NewObjectID()
	target := primitive.NewObjectID()

	events := []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &target, Success: true,
			CreatedAt: time.Now().Add(-2 * time.Minute)},
		{Category: audit.CategoryAdmin, EventType: audit.EventUserDeleted, ActorID: &admin, UserID: &target, Success: true,
			CreatedAt: time.Now().Add(-1 * time.Minute)},
		{Category: audit.CategoryAdmin, EventType: audit.EventJobDeleted, ActorID: &admin, Success: true},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	got, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAdmin})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d admin events, want 2", len(got))
	}
	if got[0].EventType != audit.EventJobDeleted {
		t.Errorf("newest first: got %q first", got[0].EventType)
	}

	got, err = store.Query(ctx, audit.QueryFilter{UserID: &target, Limit: 1})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 || got[0].EventType != audit.EventUserDeleted {
		t.Errorf("user filter with limit: got %+v", got)
	}
}
