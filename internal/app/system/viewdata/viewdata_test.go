package viewdata_test

import (
	"testing"

	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/dalemusser/fresherlink/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolver_People(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	v := viewdata.NewResolver(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fx.CreateStudent(ctx, "s@example.com", "Nadia")
	company := fx.CreateCompany(ctx, "c@example.com", "Acme")
	admin := fx.CreateAdmin(ctx, "root@example.com")
	ghost := primitive.NewObjectID()

	people, err := v.People(ctx, []primitive.ObjectID{student.ID, company.ID, admin.ID, ghost, student.ID})
	if err != nil {
		t.Fatalf("People: %v", err)
	}

	tests := []struct {
		id   primitive.ObjectID
		name string
		role string
	}{
		{student.ID, "Nadia", models.RoleStudent},
		{company.ID, "Acme", models.RoleCompany},
		{admin.ID, "root@example.com", models.RoleAdmin},
		{ghost, "", ""},
	}
	for _, tt := range tests {
		p := people[tt.id]
		if p.ID != tt.id || p.Name != tt.name || p.Role != tt.role {
			t.Errorf("People[%s] = %+v, want name %q role %q", tt.id.Hex(), p, tt.name, tt.role)
		}
	}
}

func TestResolver_JobsAndPosts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	v := viewdata.NewResolver(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	company := fx.CreateCompany(ctx, "c@example.com", "Acme")
	student := fx.CreateStudent(ctx, "s@example.com", "Nadia")
	j := fx.CreateActiveJob(ctx, company.ID, "Intern", testutil.Now())

	jv, err := v.Job(ctx, j)
	if err != nil || jv.Company.Name != "Acme" || jv.Title != "Intern" {
		t.Errorf("Job = %+v, %v", jv, err)
	}

	p := fx.CreatePost(ctx, student.ID, "hello")
	p.Comments = []models.Comment{{ID: primitive.NewObjectID(), UserID: company.ID, Text: "hi"}}
	views, err := v.Posts(ctx, []models.Post{p}, map[primitive.ObjectID]bool{p.ID: true})
	if err != nil || len(views) != 1 {
		t.Fatalf("Posts = %v, %v", views, err)
	}
	pv := views[0]
	if pv.Author.Name != "Nadia" || !pv.LikedByMe || pv.Comments[0].User.Name != "Acme" {
		t.Errorf("post view = %+v", pv)
	}
}
