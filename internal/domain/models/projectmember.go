// internal/domain/models/projectmember.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical project roles.
const (
	ProjectRoleOwner  = "project_owner"
	ProjectRoleAdmin  = "project_admin"
	ProjectRoleMember = "member"
	ProjectRoleViewer = "viewer"
)

// Project member statuses.
const (
	ProjectMemberActive  = "active"
	ProjectMemberRemoved = "removed"
)

// ProjectRoleFromName maps a denormalized role name (OWNER, ADMIN,
// MEMBER, VIEWER, in any case) onto the canonical role. Membership
// documents written by older creation paths carry only RoleName, so
// resolution must accept both representations. Returns "" when the
// name is unknown.
func ProjectRoleFromName(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "owner", "project_owner":
		return ProjectRoleOwner
	case "admin", "project_admin":
		return ProjectRoleAdmin
	case "member":
		return ProjectRoleMember
	case "viewer":
		return ProjectRoleViewer
	}
	return ""
}

// ProjectMember joins a user to a project. The role is stored either in
// the canonical Role field or, on documents from older creation paths,
// as a denormalized RoleName string, optionally pointing at a custom
// role document via RoleID. Removal flips Status to removed.
type ProjectMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"project_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`

	Role     string              `bson:"role,omitempty" json:"role,omitempty"` // canonical role enum
	RoleName string              `bson:"role_name,omitempty" json:"role_name,omitempty"`
	RoleID   *primitive.ObjectID `bson:"role_id,omitempty" json:"role_id,omitempty"` // custom role document

	Status    string    `bson:"status" json:"status"` // active | removed
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ProjectRoleDoc is a custom role document referenced by
// ProjectMember.RoleID. Its permissions are merged on top of the
// role defaults during resolution.
type ProjectRoleDoc struct {
	ID          primitive.ObjectID     `bson:"_id" json:"id"`
	ProjectID   primitive.ObjectID     `bson:"project_id" json:"project_id"`
	Name        string                 `bson:"name" json:"name"`
	Permissions []ProjectPermissionKey `bson:"permissions" json:"permissions"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
}
