// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's role (lowercased), ObjectID and a found flag.
// A missing user or a malformed id yields "", NilObjectID, false, so
// ok=true always means an authenticated user with a usable id.
func UserCtx(r *http.Request) (role string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Fail closed.
		return "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), userID, true
}

// IsAdmin reports whether the caller is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

func IsStudent(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == models.RoleStudent
}

func IsCompany(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == models.RoleCompany
}
