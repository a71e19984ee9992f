package notify_test

import (
	"strings"
	"testing"

	notificationstore "github.com/dalemusser/fresherlink/internal/app/store/notifications"
	"github.com/dalemusser/fresherlink/internal/app/system/notify"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/dalemusser/fresherlink/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestNotifier_ApplicationMessages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := notificationstore.New(db)
	n := notify.New(store, zap.NewNop())

	job := models.Job{ID: primitive.NewObjectID(), CompanyID: primitive.NewObjectID(), Title: "Go Intern"}
	app := models.Application{ID: primitive.NewObjectID(), StudentID: primitive.NewObjectID(), JobID: job.ID, Status: models.ApplicationShortlisted}

	n.ApplicationReceived(ctx, job, app, "Asha")
	n.ApplicationStatusChanged(ctx, job, app, "Acme")

	got, err := store.ListByRecipient(ctx, job.CompanyID)
	if err != nil || len(got) != 1 {
		t.Fatalf("company notifications: %v, %d", err, len(got))
	}
	if got[0].Type != models.NotifyApplicationReceived || got[0].IsRead {
		t.Errorf("unexpected company notification %+v", got[0])
	}

	got, err = store.ListByRecipient(ctx, app.StudentID)
	if err != nil || len(got) != 1 {
		t.Fatalf("student notifications: %v, %d", err, len(got))
	}
	msg := got[0].Message
	for _, want := range []string{"Go Intern", "shortlisted", "Acme"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestNotifier_SelfActionsAreSilent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := notificationstore.New(db)
	n := notify.New(store, zap.NewNop())

	author := primitive.NewObjectID()
	post := models.Post{ID: primitive.NewObjectID(), AuthorID: author}
	n.PostLiked(ctx, post, author, "me")
	n.PostCommented(ctx, post, author, "me")

	count, err := store.CountUnread(ctx, author)
	if err != nil {
		t.Fatalf("CountUnread: %v", err)
	}
	if count != 0 {
		t.Errorf("got %d notifications for own actions, want 0", count)
	}
}

func TestNotifier_Announce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := notificationstore.New(db)
	n := notify.New(store, zap.NewNop())

	recipients := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	sent, err := n.Announce(ctx, primitive.NewObjectID(), recipients, "Maintenance tonight")
	if err != nil {
		t.Fatalf("Announce: %v", err)
	}
	if sent != 3 {
		t.Errorf("sent = %d, want 3", sent)
	}
	for _, r := range recipients {
		if c, _ := store.CountUnread(ctx, r); c != 1 {
			t.Errorf("recipient %s has %d unread, want 1", r.Hex(), c)
		}
	}
}

func TestNotifier_WriteFailureIsSwallowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	cancel() // every write fails with context canceled

	n := notify.New(notificationstore.New(db), zap.NewNop())
	// must not panic or block
	n.NewFollower(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "someone")
}
