// internal/domain/models/department.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department is an organization-scoped group. In the department model it
// is the only source of organization permissions for non-owners: a member
// with no department assignment has no organization permissions at all.
type Department struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	Name           string             `bson:"name" json:"name"`
	NameCI         string             `bson:"name_ci" json:"name_ci"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// DepartmentPermission grants one organization permission key to one
// department. A member's org permissions are the union of these grants
// across every department they are assigned to.
type DepartmentPermission struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	DepartmentID   primitive.ObjectID `bson:"department_id" json:"department_id"`
	PermissionKey  OrgPermissionKey   `bson:"permission_key" json:"permission_key"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// OrgMemberDepartment assigns an organization membership to a department.
// One document per (membership, department) pair.
type OrgMemberDepartment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	MembershipID   primitive.ObjectID `bson:"membership_id" json:"membership_id"`
	DepartmentID   primitive.ObjectID `bson:"department_id" json:"department_id"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
