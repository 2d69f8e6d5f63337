// internal/domain/models/workspace.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workspace kinds.
const (
	WorkspaceKindPersonal = "personal"
	WorkspaceKindOrg      = "org"
)

// Workspace is the middle scope. A personal workspace is owned by exactly
// one user and has no organization; each account may create at most one.
// An org workspace belongs to an organization, which makes org-level
// roles eligible to override workspace membership.
type Workspace struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"`

	Kind string `bson:"kind" json:"kind"` // personal | org

	// Set for org workspaces only; nil means personal.
	OrganizationID *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`

	// Owner of a personal workspace; also the creator of an org workspace.
	OwnerID primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsPersonal reports whether the workspace has no parent organization.
func (w Workspace) IsPersonal() bool {
	return w.OrganizationID == nil
}
