package favoritestore_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	favoritestore "github.com/dalemusser/fresherlink/internal/app/store/favorites"
	"github.com/dalemusser/fresherlink/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_AddRemoveExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := favoritestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student, job := primitive.NewObjectID(), primitive.NewObjectID()

	if ok, _ := store.Exists(ctx, student, job); ok {
		t.Fatal("Exists before Add")
	}
	if _, err := store.Add(ctx, student, job); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, student, job); !errors.Is(err, favoritestore.ErrDuplicate) {
		t.Fatalf("second Add: %v, want ErrDuplicate", err)
	}
	if ok, _ := store.Exists(ctx, student, job); !ok {
		t.Fatal("Exists after Add = false")
	}
	if err := store.Remove(ctx, student, job); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(ctx, student, job); !errors.Is(err, favoritestore.ErrNotFound) {
		t.Fatalf("second Remove: %v, want ErrNotFound", err)
	}
}

func TestStore_Add_Concurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := favoritestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student, job := primitive.NewObjectID(), primitive.NewObjectID()

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Add(ctx, student, job)
			if err != nil && !errors.Is(err, favoritestore.ErrDuplicate) {
				t.Errorf("Add: %v", err)
			}
		}()
	}
	wg.Wait()

	n, err := db.Collection("favorites").CountDocuments(ctx, bson.M{"student_id": student, "job_id": job})
	if err != nil || n != 1 {
		t.Errorf("stored %d favorites (err %v), want 1", n, err)
	}
}

func TestStore_JobIDs_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := favoritestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := primitive.NewObjectID()
	var want []primitive.ObjectID
	for i := 0; i < 3; i++ {
		job := primitive.NewObjectID()
		if _, err := store.Add(ctx, student, job); err != nil {
			t.Fatal(err)
		}
		want = append([]primitive.ObjectID{job}, want...)
		time.Sleep(5 * time.Millisecond)
	}
	store.Add(ctx, primitive.NewObjectID(), primitive.NewObjectID())

	got, err := store.JobIDs(ctx, student)
	if err != nil {
		t.Fatalf("JobIDs: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d ids, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids[%d] mismatch", i)
		}
	}

	empty, err := store.JobIDs(ctx, primitive.NewObjectID())
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("empty JobIDs = %v, %v", empty, err)
	}
}
