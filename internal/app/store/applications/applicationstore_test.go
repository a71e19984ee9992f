package applicationstore_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	applicationstore "github.com/dalemusser/fresherlink/internal/app/store/applications"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/dalemusser/fresherlink/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_DuplicateYieldsOneRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student, job := primitive.NewObjectID(), primitive.NewObjectID()

	a, err := store.Create(ctx, student, job)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if a.Status != models.ApplicationPending {
		t.Errorf("status = %q, want pending", a.Status)
	}
	if _, err := store.Create(ctx, student, job); !errors.Is(err, applicationstore.ErrDuplicate) {
		t.Fatalf("second Create: err = %v, want ErrDuplicate", err)
	}

	n, err := db.Collection("applications").CountDocuments(ctx, bson.M{"student_id": student, "job_id": job})
	if err != nil || n != 1 {
		t.Errorf("stored %d applications (err %v), want 1", n, err)
	}
}

func TestStore_Create_ConcurrentDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student, job := primitive.NewObjectID(), primitive.NewObjectID()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, student, job)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, applicationstore.ErrDuplicate):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("%d creates succeeded, want exactly 1", ok)
	}
}

func TestStore_SetStatus_BidirectionalAndValidated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if err != nil {
		t.Fatal(err)
	}

	for _, status := range []string{models.ApplicationShortlisted, models.ApplicationRejected, models.ApplicationShortlisted, models.ApplicationRejected} {
		got, err := store.SetStatus(ctx, a.ID, status)
		if err != nil {
			t.Fatalf("SetStatus(%s): %v", status, err)
		}
		if got.Status != status {
			t.Fatalf("status = %q, want %q", got.Status, status)
		}
	}

	for _, bad := range []string{models.ApplicationPending, "accepted", ""} {
		if _, err := store.SetStatus(ctx, a.ID, bad); err == nil {
			t.Errorf("SetStatus(%q) should fail", bad)
		}
	}
	got, _ := store.GetByID(ctx, a.ID)
	if got.Status != models.ApplicationRejected {
		t.Errorf("invalid status changed state to %q", got.Status)
	}

	if _, err := store.SetStatus(ctx, primitive.NewObjectID(), models.ApplicationShortlisted); !errors.Is(err, applicationstore.ErrNotFound) {
		t.Errorf("missing application: %v", err)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := primitive.NewObjectID()
	job := primitive.NewObjectID()
	first, _ := store.Create(ctx, student, primitive.NewObjectID())
	time.Sleep(5 * time.Millisecond)
	second, _ := store.Create(ctx, student, job)
	store.Create(ctx, primitive.NewObjectID(), job)

	mine, err := store.ListByStudent(ctx, student)
	if err != nil || len(mine) != 2 {
		t.Fatalf("ListByStudent: %v, %d", err, len(mine))
	}
	if mine[0].ID != second.ID || mine[1].ID != first.ID {
		t.Error("ListByStudent not newest first")
	}

	forJob, err := store.ListByJob(ctx, job)
	if err != nil || len(forJob) != 2 {
		t.Fatalf("ListByJob: %v, %d", err, len(forJob))
	}
	if n, _ := store.Count(ctx); n != 3 {
		t.Errorf("Count = %d", n)
	}
}
