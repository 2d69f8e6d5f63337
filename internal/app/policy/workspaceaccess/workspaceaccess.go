// internal/app/policy/workspaceaccess/workspaceaccess.go

// Package workspaceaccess resolves a user's capability set on a single
// workspace. It composes the org resolver's result with direct
// workspace membership under a fixed override hierarchy:
//
//  1. Org owner: full access, membership or not. A synthetic owner
//     membership is substituted when no direct one exists.
//  2. Personal workspace: direct membership only; there is no org to
//     fall back to.
//  3. Org workspace, non-owner: listing is unlocked by either
//     department-based org access or direct membership; open/write/
//     delete need direct membership at the required role.
//
// Listing and reading are deliberately decoupled: a department can let
// a user see that a workspace exists without letting them open it.
package workspaceaccess

import (
	"context"

	"github.com/scopehq/scopehub/internal/app/policy/orgaccess"
	workspacemembershipstore "github.com/scopehq/scopehub/internal/app/store/workspacememberships"
	workspacestore "github.com/scopehq/scopehub/internal/app/store/workspaces"
	"github.com/scopehq/scopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WorkspaceAccess is the resolver's immutable output. The zero value is
// the zero-access result.
type WorkspaceAccess struct {
	CanList   bool `json:"can_list"`
	CanRead   bool `json:"can_read"`
	CanWrite  bool `json:"can_write"`
	CanDelete bool `json:"can_delete"`

	Role       string `json:"role,omitempty"`
	IsOrgOwner bool   `json:"is_org_owner"`

	Membership models.ResolvedMembership `json:"membership,omitempty"`
}

type Resolver struct {
	workspaces  *workspacestore.Store
	memberships *workspacemembershipstore.Store
	org         *orgaccess.Resolver
	log         *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.L()
	}
	return &Resolver{
		workspaces:  workspacestore.New(db),
		memberships: workspacemembershipstore.New(db),
		org:         orgaccess.New(db, logger),
		log:         logger,
	}
}

// roleRank orders workspace roles for threshold checks.
func roleRank(role string) int {
	switch role {
	case models.WorkspaceRoleOwner:
		return 3
	case models.WorkspaceRoleAdmin, "administrator", "workspace_admin":
		return 2
	case models.WorkspaceRoleMember:
		return 1
	}
	return 0
}

// Resolve computes the user's capabilities on a workspace. It never
// returns an error: a missing workspace resolves to zero access
// silently, and any other failure resolves to zero access with a log
// line (fail closed).
func (r *Resolver) Resolve(ctx context.Context, userID, workspaceID primitive.ObjectID) WorkspaceAccess {
	ws, err := r.workspaces.GetByID(ctx, workspaceID)
	if err == workspacestore.ErrNotFound {
		// Not-found stays quiet so access probing cannot distinguish a
		// hidden workspace from a nonexistent one.
		return WorkspaceAccess{}
	}
	if err != nil {
		r.log.Warn("workspace access: workspace lookup failed, failing closed",
			zap.Error(err), zap.String("workspace_id", workspaceID.Hex()))
		return WorkspaceAccess{}
	}

	var direct *models.WorkspaceMembership
	m, err := r.memberships.GetActive(ctx, workspaceID, userID)
	switch err {
	case nil:
		direct = &m
	case workspacemembershipstore.ErrNotFound:
		// no direct membership; overrides may still apply
	default:
		r.log.Warn("workspace access: membership lookup failed, failing closed",
			zap.Error(err), zap.String("workspace_id", workspaceID.Hex()), zap.String("user_id", userID.Hex()))
		return WorkspaceAccess{}
	}

	// Org workspaces consult the org resolver for override eligibility.
	if !ws.IsPersonal() {
		orgRes := r.org.Resolve(ctx, userID, *ws.OrganizationID)

		// Org owner: every capability, regardless of direct membership.
		if orgRes.IsOwner {
			acc := WorkspaceAccess{
				CanList: true, CanRead: true, CanWrite: true, CanDelete: true,
				IsOrgOwner: true,
			}
			if direct != nil {
				acc.Role = direct.Role
				acc.Membership = models.ResolvedMembership{Kind: models.MembershipDirect, Role: direct.Role}
			} else {
				acc.Role = models.WorkspaceRoleOwner
				acc.Membership = models.ResolvedMembership{Kind: models.MembershipSynthetic, Role: models.WorkspaceRoleOwner}
			}
			return acc
		}

		acc := WorkspaceAccess{
			CanList: orgRes.HasDepartmentAccess || direct != nil,
		}
		if direct != nil {
			rank := roleRank(direct.Role)
			acc.CanRead = rank >= 1
			acc.CanWrite = rank >= 2
			acc.CanDelete = rank >= 2
			acc.Role = direct.Role
			acc.Membership = models.ResolvedMembership{Kind: models.MembershipDirect, Role: direct.Role}
		}
		return acc
	}

	// Personal workspace: direct membership or nothing.
	if direct == nil {
		return WorkspaceAccess{}
	}
	rank := roleRank(direct.Role)
	return WorkspaceAccess{
		CanList:    true,
		CanRead:    rank >= 1,
		CanWrite:   rank >= 2,
		CanDelete:  rank >= 2,
		Role:       direct.Role,
		Membership: models.ResolvedMembership{Kind: models.MembershipDirect, Role: direct.Role},
	}
}
