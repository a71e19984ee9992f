package favorites_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/fresherlink/internal/app/features/favorites"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/dalemusser/fresherlink/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*favorites.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return favorites.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func call(fn http.HandlerFunc, method, jobID string, u models.User) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := testutil.AsUser(testutil.NewRequest(method, "/favorites/"+jobID), u)
	fn(rec, testutil.WithChiURLParam(req, "jobId", jobID))
	return rec
}

func TestAddRemove(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	co := fx.CreateCompany(ctx, "hr@acme.test", "Acme")
	j := fx.CreateActiveJob(ctx, co.ID, "Go Intern", testutil.Now())
	s := fx.CreateStudent(ctx, "rafi@uni.test", "Rafi")
	id := j.ID.Hex()

	steps := []struct {
		name string
		fn   http.HandlerFunc
		id   string
		want int
	}{
		{"add", h.HandleAdd, id, http.StatusCreated},
		{"add again", h.HandleAdd, id, http.StatusBadRequest},
		{"add missing job", h.HandleAdd, "64b000000000000000000000", http.StatusNotFound},
		{"remove", h.HandleRemove, id, http.StatusOK},
		{"remove again", h.HandleRemove, id, http.StatusNotFound},
	}
	for _, st := range steps {
		rec := call(st.fn, "POST", st.id, s)
		if rec.Code != st.want {
			t.Errorf("%s: status = %d, want %d (%s)", st.name, rec.Code, st.want, rec.Body.String())
		}
	}
}

func TestServeCheck(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	co := fx.CreateCompany(ctx, "hr@acme.test", "Acme")
	j := fx.CreateActiveJob(ctx, co.ID, "Go Intern", testutil.Now())
	s := fx.CreateStudent(ctx, "rafi@uni.test", "Rafi")

	check := func(id string) bool {
		t.Helper()
		rec := call(h.ServeCheck, "GET", id, s)
		if rec.Code != http.StatusOK {
			t.Fatalf("check status = %d", rec.Code)
		}
		var got struct {
			IsFavorite bool `json:"isFavorite"`
		}
		testutil.DecodeJSON(t, rec, &got)
		return got.IsFavorite
	}

	if check(j.ID.Hex()) {
		t.Error("favorite before add")
	}
	if check("garbage") {
		t.Error("malformed id must answer false")
	}
	call(h.HandleAdd, "POST", j.ID.Hex(), s)
	if !check(j.ID.Hex()) {
		t.Error("not a favorite after add")
	}
}

func TestServeList_FavoriteOrder(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	co := fx.CreateCompany(ctx, "hr@acme.test", "Acme")
	older := fx.CreateActiveJob(ctx, co.ID, "Older Job", testutil.Now().Add(-time.Hour))
	newer := fx.CreateActiveJob(ctx, co.ID, "Newer Job", testutil.Now())
	s := fx.CreateStudent(ctx, "rafi@uni.test", "Rafi")

	// Favorite the newer job first; the list follows favorite time, not job time.
	call(h.HandleAdd, "POST", newer.ID.Hex(), s)
	time.Sleep(5 * time.Millisecond)
	call(h.HandleAdd, "POST", older.ID.Hex(), s)

	rec := httptest.NewRecorder()
	h.ServeList(rec, testutil.AsUser(testutil.NewRequest("GET", "/favorites"), s))
	var got []viewdata.JobView
	testutil.DecodeJSON(t, rec, &got)
	if len(got) != 2 || got[0].Title != "Older Job" || got[1].Title != "Newer Job" {
		t.Fatalf("favorites = %+v", got)
	}
	if got[0].Company.Name != "Acme" {
		t.Errorf("company = %+v", got[0].Company)
	}
}
