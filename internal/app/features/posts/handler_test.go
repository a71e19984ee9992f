package posts_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/fresherlink/internal/app/features/posts"
	notificationstore "github.com/dalemusser/fresherlink/internal/app/store/notifications"
	"github.com/dalemusser/fresherlink/internal/app/system/notify"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/dalemusser/fresherlink/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*posts.Handler, *testutil.Fixtures, *notificationstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	notes := notificationstore.New(db)
	return posts.NewHandler(db, notify.New(notes, zap.NewNop()), zap.NewNop()), testutil.NewFixtures(t, db), notes
}

func onPost(fn http.HandlerFunc, req *http.Request, u models.User, id string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	fn(rec, testutil.WithChiURLParam(testutil.AsUser(req, u), "id", id))
	return rec
}

func TestHandleCreate(t *testing.T) {
	h, fx, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	alice := fx.CreateStudent(ctx, "alice@uni.test", "Alice")

	tests := []struct {
		name    string
		body    map[string]any
		want    int
		caption string
	}{
		{"caption", map[string]any{"caption": "Hello <b>world</b>"}, http.StatusCreated, "Hello world"},
		{"media only", map[string]any{"media": map[string]string{"url": "https://cdn.test/a.png", "type": "image"}}, http.StatusCreated, ""},
		{"empty", map[string]any{"caption": "   "}, http.StatusBadRequest, ""},
		{"markup only", map[string]any{"caption": "<script>x()</script>"}, http.StatusBadRequest, ""},
		{"bad media type", map[string]any{"media": map[string]string{"url": "https://cdn.test/a.gif", "type": "gif"}}, http.StatusBadRequest, ""},
		{"bad media url", map[string]any{"media": map[string]string{"url": "not a url", "type": "image"}}, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleCreate(rec, testutil.AsUser(testutil.JSONRequest(t, "POST", "/posts", tt.body), alice))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want != http.StatusCreated {
				return
			}
			var got viewdata.PostView
			testutil.DecodeJSON(t, rec, &got)
			if got.Caption != tt.caption || got.Author.Name != "Alice" || got.LikeCount != 0 {
				t.Errorf("post = %+v", got)
			}
		})
	}
}

func TestServeFeed_LikedByMe(t *testing.T) {
	h, fx, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateStudent(ctx, "alice@uni.test", "Alice")
	bob := fx.CreateStudent(ctx, "bob@uni.test", "Bob")
	first := fx.CreatePost(ctx, alice.ID, "first")
	fx.CreatePost(ctx, bob.ID, "second")

	onPost(h.HandleLike, testutil.NewRequest("POST", "/posts/x/like"), bob, first.ID.Hex())

	rec := httptest.NewRecorder()
	h.ServeFeed(rec, testutil.AsUser(testutil.NewRequest("GET", "/posts?limit=10"), bob))
	var feed struct {
		Posts []viewdata.PostView `json:"posts"`
		Total int64               `json:"total"`
	}
	testutil.DecodeJSON(t, rec, &feed)
	if feed.Total != 2 || len(feed.Posts) != 2 {
		t.Fatalf("feed = %+v", feed)
	}
	for _, p := range feed.Posts {
		wantLiked := p.ID == first.ID
		if p.LikedByMe != wantLiked {
			t.Errorf("post %q likedByMe = %v, want %v", p.Caption, p.LikedByMe, wantLiked)
		}
	}

	rec = httptest.NewRecorder()
	req := testutil.WithChiURLParam(testutil.AsUser(testutil.NewRequest("GET", "/posts/user/x"), bob), "userId", alice.ID.Hex())
	h.ServeByUser(rec, req)
	var mine []viewdata.PostView
	testutil.DecodeJSON(t, rec, &mine)
	if len(mine) != 1 || mine[0].Author.Name != "Alice" || mine[0].LikeCount != 1 {
		t.Errorf("alice's posts = %+v", mine)
	}
}

func TestHandleLike_Toggle(t *testing.T) {
	h, fx, notes := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateStudent(ctx, "alice@uni.test", "Alice")
	bob := fx.CreateStudent(ctx, "bob@uni.test", "Bob")
	p := fx.CreatePost(ctx, alice.ID, "hello")

	like := func(u models.User) (bool, int64) {
		t.Helper()
		rec := onPost(h.HandleLike, testutil.NewRequest("POST", "/posts/x/like"), u, p.ID.Hex())
		if rec.Code != http.StatusOK {
			t.Fatalf("like status = %d (%s)", rec.Code, rec.Body.String())
		}
		var got struct {
			Liked     bool  `json:"liked"`
			LikeCount int64 `json:"likeCount"`
		}
		testutil.DecodeJSON(t, rec, &got)
		return got.Liked, got.LikeCount
	}

	if liked, n := like(bob); !liked || n != 1 {
		t.Errorf("bob like = %v/%d", liked, n)
	}
	if liked, n := like(alice); !liked || n != 2 {
		t.Errorf("alice self-like = %v/%d", liked, n)
	}
	if liked, n := like(bob); liked || n != 1 {
		t.Errorf("bob unlike = %v/%d", liked, n)
	}

	got, err := notes.ListByRecipient(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Type != models.NotifyPostLike || got[0].Message != "Bob liked your post" {
		t.Errorf("notifications = %+v", got)
	}

	rec := onPost(h.HandleLike, testutil.NewRequest("POST", "/posts/x/like"), bob, "64b000000000000000000000")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing post status = %d, want 404", rec.Code)
	}
}

func TestHandleEdit_AuthorOnly(t *testing.T) {
	h, fx, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateStudent(ctx, "alice@uni.test", "Alice")
	bob := fx.CreateStudent(ctx, "bob@uni.test", "Bob")
	p := fx.CreatePost(ctx, alice.ID, "draft")

	edit := func(u models.User, caption string) int {
		req := testutil.JSONRequest(t, "PUT", "/posts/x", map[string]string{"caption": caption})
		return onPost(h.HandleEdit, req, u, p.ID.Hex()).Code
	}
	if code := edit(bob, "hijack"); code != http.StatusNotFound {
		t.Errorf("stranger edit = %d, want 404", code)
	}
	if code := edit(alice, "  "); code != http.StatusBadRequest {
		t.Errorf("emptying a media-less post = %d, want 400", code)
	}
	if code := edit(alice, "final"); code != http.StatusOK {
		t.Errorf("author edit = %d, want 200", code)
	}
}

func TestHandleDelete(t *testing.T) {
	h, fx, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateStudent(ctx, "alice@uni.test", "Alice")
	bob := fx.CreateStudent(ctx, "bob@uni.test", "Bob")
	admin := fx.CreateAdmin(ctx, "root@fresherlink.test")
	mine := fx.CreatePost(ctx, alice.ID, "mine")
	other := fx.CreatePost(ctx, alice.ID, "moderated")
	onPost(h.HandleLike, testutil.NewRequest("POST", "/posts/x/like"), bob, mine.ID.Hex())

	del := func(u models.User, id string) int {
		return onPost(h.HandleDelete, testutil.NewRequest("DELETE", "/posts/x"), u, id).Code
	}
	if code := del(bob, mine.ID.Hex()); code != http.StatusForbidden {
		t.Errorf("stranger delete = %d, want 403", code)
	}
	if code := del(alice, mine.ID.Hex()); code != http.StatusOK {
		t.Errorf("author delete = %d, want 200", code)
	}
	if code := del(admin, other.ID.Hex()); code != http.StatusOK {
		t.Errorf("admin delete = %d, want 200", code)
	}
	if code := del(alice, mine.ID.Hex()); code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", code)
	}

	n, err := fx.DB().Collection("post_likes").CountDocuments(ctx, bson.M{"post_id": mine.ID})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("likes left = %d, want 0", n)
	}
}

func TestComments(t *testing.T) {
	h, fx, notes := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateStudent(ctx, "alice@uni.test", "Alice")
	bob := fx.CreateStudent(ctx, "bob@uni.test", "Bob")
	carol := fx.CreateStudent(ctx, "carol@uni.test", "Carol")
	admin := fx.CreateAdmin(ctx, "root@fresherlink.test")
	p := fx.CreatePost(ctx, alice.ID, "hello")

	comment := func(u models.User, text string) *httptest.ResponseRecorder {
		req := testutil.JSONRequest(t, "POST", "/posts/x/comments", map[string]string{"text": text})
		return onPost(h.HandleComment, req, u, p.ID.Hex())
	}

	rec := comment(bob, "<i>nice</i>")
	if rec.Code != http.StatusCreated {
		t.Fatalf("comment status = %d (%s)", rec.Code, rec.Body.String())
	}
	var c viewdata.CommentView
	testutil.DecodeJSON(t, rec, &c)
	if c.Text != "nice" || c.User.Name != "Bob" {
		t.Errorf("comment = %+v", c)
	}
	if rec := comment(bob, ""); rec.Code != http.StatusBadRequest {
		t.Errorf("empty comment = %d, want 400", rec.Code)
	}
	comment(alice, "thanks")
	second := comment(bob, "again")
	var c2 viewdata.CommentView
	testutil.DecodeJSON(t, second, &c2)

	got, err := notes.ListByRecipient(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Type != models.NotifyPostComment {
		t.Errorf("notifications = %+v", got)
	}

	delComment := func(u models.User, commentID string) int {
		rec := httptest.NewRecorder()
		req := testutil.AsUser(testutil.NewRequest("DELETE", "/posts/x/comments/y"), u)
		req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
		req = testutil.WithChiURLParam(req, "commentId", commentID)
		h.HandleDeleteComment(rec, req)
		return rec.Code
	}
	tests := []struct {
		name string
		user models.User
		id   string
		want int
	}{
		{"not the commenter", carol, c.ID.Hex(), http.StatusForbidden},
		{"commenter", bob, c.ID.Hex(), http.StatusOK},
		{"already gone", bob, c.ID.Hex(), http.StatusNotFound},
		{"admin", admin, c2.ID.Hex(), http.StatusOK},
		{"malformed", bob, "zzz", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := delComment(tt.user, tt.id); code != tt.want {
				t.Errorf("status = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestEngagement_NotificationFailureIsSwallowed(t *testing.T) {
	h, fx, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateStudent(ctx, "alice@uni.test", "Alice")
	bob := fx.CreateStudent(ctx, "bob@uni.test", "Bob")
	p := fx.CreatePost(ctx, alice.ID, "hello")
	testutil.RejectInserts(t, fx.DB(), "notifications")

	if rec := onPost(h.HandleLike, testutil.NewRequest("POST", "/posts/x/like"), bob, p.ID.Hex()); rec.Code != http.StatusOK {
		t.Errorf("like status = %d (%s), want 200", rec.Code, rec.Body.String())
	}
	req := testutil.JSONRequest(t, "POST", "/posts/x/comments", map[string]string{"text": "nice"})
	if rec := onPost(h.HandleComment, req, bob, p.ID.Hex()); rec.Code != http.StatusCreated {
		t.Errorf("comment status = %d (%s), want 201", rec.Code, rec.Body.String())
	}
}
