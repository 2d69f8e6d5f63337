// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/scopehq/scopehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the current user's name, Mongo ObjectID, and a found
// flag. If no user is present in context or the user ID is malformed,
// it returns "", NilObjectID, false. Callers can trust that ok=true
// means a valid, authenticated user with a valid ObjectID.
//
// There is no platform-wide role: authority is always relative to an
// organization, workspace, or project and comes from the resolvers in
// internal/app/policy.
func UserCtx(r *http.Request) (name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "", primitive.NilObjectID, false
	}
	return user.Name, userID, true
}

// IsSignedIn reports whether the request carries a valid session user.
func IsSignedIn(r *http.Request) bool {
	_, _, ok := UserCtx(r)
	return ok
}
