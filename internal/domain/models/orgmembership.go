// internal/domain/models/orgmembership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization membership roles, in descending authority order.
const (
	OrgRoleOwner     = "owner"
	OrgRoleAdmin     = "admin"
	OrgRoleModerator = "moderator"
	OrgRoleMember    = "member"
)

// IsValidOrgRole reports whether role is one of the organization roles.
func IsValidOrgRole(role string) bool {
	switch role {
	case OrgRoleOwner, OrgRoleAdmin, OrgRoleModerator, OrgRoleMember:
		return true
	}
	return false
}

// OrganizationMembership joins a user to an organization.
// Exactly one document per (org_id, user_id). Memberships are created
// when an invite is accepted and deactivated by flipping Status; they
// are never hard-deleted, so historical resolutions stay auditable.
type OrganizationMembership struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role           string             `bson:"role" json:"role"`     // owner | admin | moderator | member
	Status         string             `bson:"status" json:"status"` // active | inactive
	InviteToken    string             `bson:"invite_token,omitempty" json:"invite_token,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
