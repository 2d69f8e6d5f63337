// internal/domain/models/workspacemembership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workspace membership roles.
const (
	WorkspaceRoleOwner  = "owner"
	WorkspaceRoleAdmin  = "admin"
	WorkspaceRoleMember = "member"
)

// IsWorkspaceAdminRole reports whether role carries workspace-admin
// authority. Older membership documents used longer role names, so the
// legacy spellings are accepted alongside the canonical ones.
func IsWorkspaceAdminRole(role string) bool {
	switch role {
	case WorkspaceRoleOwner, WorkspaceRoleAdmin, "administrator", "workspace_admin":
		return true
	}
	return false
}

// WorkspaceMembership joins a user to a workspace. Removal flips Status
// to deleted rather than deleting the document; a deleted membership is
// invisible to access resolution but remains for audit.
type WorkspaceMembership struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkspaceID primitive.ObjectID `bson:"workspace_id" json:"workspace_id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role        string             `bson:"role" json:"role"`     // owner | admin | member
	Status      string             `bson:"status" json:"status"` // active | deleted
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
