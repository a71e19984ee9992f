package notifications_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/fresherlink/internal/app/features/notifications"
	notificationstore "github.com/dalemusser/fresherlink/internal/app/store/notifications"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/dalemusser/fresherlink/internal/testutil"
	"go.uber.org/zap"
)

type inbox struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}

func setup(t *testing.T) (*notifications.Handler, *testutil.Fixtures, *notificationstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return notifications.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db), notificationstore.New(db)
}

func readInbox(t *testing.T, h *notifications.Handler, u models.User) inbox {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeList(rec, testutil.AsUser(testutil.NewRequest("GET", "/notifications"), u))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var got inbox
	testutil.DecodeJSON(t, rec, &got)
	return got
}

func TestInbox(t *testing.T) {
	h, fx, notes := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateStudent(ctx, "alice@uni.test", "Alice")
	bob := fx.CreateStudent(ctx, "bob@uni.test", "Bob")

	first, err := notes.Insert(ctx, models.Notification{RecipientID: alice.ID, Type: models.NotifyNewFollower, Message: "Bob started following you"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := notes.Insert(ctx, models.Notification{RecipientID: alice.ID, Type: models.NotifyAnnouncement, Message: "Welcome"}); err != nil {
		t.Fatal(err)
	}

	got := readInbox(t, h, alice)
	if len(got.Notifications) != 2 || got.UnreadCount != 2 {
		t.Fatalf("inbox = %+v", got)
	}
	if got.Notifications[0].Message != "Welcome" {
		t.Errorf("first = %q, want newest first", got.Notifications[0].Message)
	}

	markRead := func(u models.User, id string) int {
		rec := httptest.NewRecorder()
		req := testutil.AsUser(testutil.NewRequest("PUT", "/notifications/"+id+"/read"), u)
		h.HandleRead(rec, testutil.WithChiURLParam(req, "id", id))
		return rec.Code
	}
	if code := markRead(bob, first.ID.Hex()); code != http.StatusNotFound {
		t.Errorf("someone else's notification: status = %d, want 404", code)
	}
	if code := markRead(alice, first.ID.Hex()); code != http.StatusOK {
		t.Errorf("own notification: status = %d, want 200", code)
	}
	if code := markRead(alice, first.ID.Hex()); code != http.StatusOK {
		t.Errorf("already read: status = %d, want 200", code)
	}
	if got := readInbox(t, h, alice); got.UnreadCount != 1 {
		t.Errorf("unread = %d, want 1", got.UnreadCount)
	}

	rec := httptest.NewRecorder()
	h.HandleReadAll(rec, testutil.AsUser(testutil.NewRequest("PUT", "/notifications/read-all"), alice))
	if rec.Code != http.StatusOK {
		t.Fatalf("read-all status = %d", rec.Code)
	}
	if got := readInbox(t, h, alice); got.UnreadCount != 0 || len(got.Notifications) != 2 {
		t.Errorf("after read-all = %+v", got)
	}
	if got := readInbox(t, h, bob); len(got.Notifications) != 0 {
		t.Errorf("bob's inbox = %+v", got)
	}
}
