package notificationstore_test

import (
	"errors"
	"testing"
	"time"

	notificationstore "github.com/dalemusser/fresherlink/internal/app/store/notifications"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/dalemusser/fresherlink/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func note(to primitive.ObjectID, msg string) models.Notification {
	return models.Notification{RecipientID: to, Message: msg, Type: models.NotifyAnnouncement}
}

func TestStore_InsertAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me := primitive.NewObjectID()
	first, err := store.Insert(ctx, models.Notification{RecipientID: me, Message: "one", Type: models.NotifyNewFollower, IsRead: true})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if first.IsRead {
		t.Error("new notification must be unread")
	}
	time.Sleep(5 * time.Millisecond)
	store.Insert(ctx, note(me, "two"))
	store.Insert(ctx, note(primitive.NewObjectID(), "not mine"))

	list, err := store.ListByRecipient(ctx, me)
	if err != nil {
		t.Fatalf("ListByRecipient: %v", err)
	}
	if len(list) != 2 || list[0].Message != "two" || list[1].Message != "one" {
		t.Errorf("list = %+v", list)
	}
	if n, _ := store.CountUnread(ctx, me); n != 2 {
		t.Errorf("CountUnread = %d, want 2", n)
	}
}

func TestStore_InsertMany(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if n, err := store.InsertMany(ctx, nil); n != 0 || err != nil {
		t.Errorf("empty InsertMany = %d, %v", n, err)
	}
	batch := []models.Notification{note(primitive.NewObjectID(), "a"), note(primitive.NewObjectID(), "b"), note(primitive.NewObjectID(), "c")}
	n, err := store.InsertMany(ctx, batch)
	if err != nil || n != 3 {
		t.Errorf("InsertMany = %d, %v", n, err)
	}
}

func TestStore_MarkRead_ScopedToRecipient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner, other := primitive.NewObjectID(), primitive.NewObjectID()
	n, _ := store.Insert(ctx, note(owner, "hello"))

	if _, err := store.MarkRead(ctx, n.ID, other); !errors.Is(err, notificationstore.ErrNotFound) {
		t.Fatalf("MarkRead by other: %v, want ErrNotFound", err)
	}
	if c, _ := store.CountUnread(ctx, owner); c != 1 {
		t.Fatal("other user's MarkRead changed state")
	}

	got, err := store.MarkRead(ctx, n.ID, owner)
	if err != nil || !got.IsRead {
		t.Fatalf("MarkRead: %+v, %v", got, err)
	}
	if _, err := store.MarkRead(ctx, n.ID, owner); err != nil {
		t.Errorf("MarkRead twice: %v", err)
	}
}

func TestStore_MarkAllRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me, other := primitive.NewObjectID(), primitive.NewObjectID()
	for i := 0; i < 3; i++ {
		store.Insert(ctx, note(me, "x"))
	}
	store.Insert(ctx, note(other, "y"))

	n, err := store.MarkAllRead(ctx, me)
	if err != nil || n != 3 {
		t.Fatalf("MarkAllRead = %d, %v", n, err)
	}
	if c, _ := store.CountUnread(ctx, me); c != 0 {
		t.Errorf("unread after MarkAllRead = %d", c)
	}
	if c, _ := store.CountUnread(ctx, other); c != 1 {
		t.Errorf("other recipient touched: unread = %d", c)
	}
	if n, _ := store.MarkAllRead(ctx, me); n != 0 {
		t.Errorf("second MarkAllRead = %d", n)
	}
}
