// internal/domain/models/orgmemberpermission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrgMemberPermission is an explicit permission grant in the legacy
// model: one document per (membership, permission key), created by an
// organization owner and hard-deleted on revoke. It is independent of
// the department model; when a member has no explicit grants at all,
// the role-default table applies instead.
type OrgMemberPermission struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	MembershipID   primitive.ObjectID `bson:"membership_id" json:"membership_id"`
	PermissionKey  OrgPermissionKey   `bson:"permission_key" json:"permission_key"`
	GrantedBy      primitive.ObjectID `bson:"granted_by" json:"granted_by"`
	GrantedAt      time.Time          `bson:"granted_at" json:"granted_at"`
}
