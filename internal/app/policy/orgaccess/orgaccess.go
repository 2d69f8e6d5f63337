// internal/app/policy/orgaccess/orgaccess.go

// Package orgaccess resolves a user's organization-level access under
// the department model: owners get everything, everyone else gets the
// union of their departments' permission grants, and a member with no
// department assignment gets nothing at all. The legacy explicit-grant
// model lives in policy/orggrants and is deliberately not consulted
// here.
//
// Resolution is a pure read. It never returns an error: every store
// failure is swallowed into the zero-access result, so callers cannot
// distinguish "no access" from "lookup failed" (fail closed).
package orgaccess

import (
	"context"

	departmentstore "github.com/scopehq/scopehub/internal/app/store/departments"
	orgmembershipstore "github.com/scopehq/scopehub/internal/app/store/orgmemberships"
	"github.com/scopehq/scopehub/internal/app/system/routemap"
	"github.com/scopehq/scopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// OrgAccess is the resolver's immutable output. The zero value is the
// zero-access result.
type OrgAccess struct {
	HasAccess bool   `json:"has_access"`
	Role      string `json:"role,omitempty"`
	IsOwner   bool   `json:"is_owner"`

	// HasDepartmentAccess reports whether the permission set came from
	// at least one department grant. It stays false for owners, whose
	// access bypasses departments entirely.
	HasDepartmentAccess bool `json:"has_department_access"`

	Permissions []models.OrgPermissionKey `json:"permissions,omitempty"`
	RouteKeys   []routemap.RouteKey       `json:"route_keys,omitempty"`
	Paths       []string                  `json:"paths,omitempty"`

	Membership models.ResolvedMembership `json:"membership,omitempty"`
	Source     models.PermissionSource   `json:"source,omitempty"`
}

// Resolver computes organization access results. It holds no state
// beyond its dependencies; every Resolve re-reads the store, so a
// department or role change is visible on the next call.
type Resolver struct {
	memberships *orgmembershipstore.Store
	departments *departmentstore.Store
	log         *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.L()
	}
	return &Resolver{
		memberships: orgmembershipstore.New(db),
		departments: departmentstore.New(db),
		log:         logger,
	}
}

// Resolve computes the user's access to an organization. Workspace-
// scoped routes are returned as keys only; use ResolveWithWorkspace to
// also get their concrete paths.
func (r *Resolver) Resolve(ctx context.Context, userID, orgID primitive.ObjectID) OrgAccess {
	return r.resolve(ctx, userID, orgID, "")
}

// ResolveWithWorkspace is Resolve with a workspace context, letting the
// route map emit workspace-relative paths as well.
func (r *Resolver) ResolveWithWorkspace(ctx context.Context, userID, orgID, workspaceID primitive.ObjectID) OrgAccess {
	return r.resolve(ctx, userID, orgID, workspaceID.Hex())
}

func (r *Resolver) resolve(ctx context.Context, userID, orgID primitive.ObjectID, workspaceID string) OrgAccess {
	m, err := r.memberships.GetActive(ctx, orgID, userID)
	if err == orgmembershipstore.ErrNotFound {
		return OrgAccess{}
	}
	if err != nil {
		r.log.Warn("org access: membership lookup failed, failing closed",
			zap.Error(err), zap.String("org_id", orgID.Hex()), zap.String("user_id", userID.Hex()))
		return OrgAccess{}
	}

	// Owner bypass. Must be the first branch: owners get the full
	// enumeration unconditionally, with no department lookups at all.
	if m.Role == models.OrgRoleOwner {
		keys := routemap.RouteKeysFor(models.AllOrgPermissions)
		return OrgAccess{
			HasAccess:   true,
			Role:        m.Role,
			IsOwner:     true,
			Permissions: models.AllOrgPermissions,
			RouteKeys:   keys,
			Paths:       routemap.PathsFor(keys, workspaceID),
			Membership:  models.ResolvedMembership{Kind: models.MembershipDirect, Role: m.Role},
			Source:      models.SourceDepartments,
		}
	}

	deptIDs, err := r.departments.DepartmentIDsForMember(ctx, m.ID)
	if err != nil {
		r.log.Warn("org access: department lookup failed, failing closed",
			zap.Error(err), zap.String("membership_id", m.ID.Hex()))
		return OrgAccess{}
	}

	// No department, no permission. This is a hard stop, not a fallback
	// to role defaults; only the legacy grant model has role defaults.
	// The membership is echoed back for observability, but the result
	// is zero-access: nothing is unlocked.
	if len(deptIDs) == 0 {
		return OrgAccess{
			Role:       m.Role,
			Membership: models.ResolvedMembership{Kind: models.MembershipDirect, Role: m.Role},
			Source:     models.SourceDepartments,
		}
	}

	perms, err := r.departments.PermissionsForDepartments(ctx, deptIDs)
	if err != nil {
		r.log.Warn("org access: department permission lookup failed, failing closed",
			zap.Error(err), zap.String("membership_id", m.ID.Hex()))
		return OrgAccess{}
	}

	keys := routemap.RouteKeysFor(perms)
	return OrgAccess{
		HasAccess:           len(perms) > 0,
		Role:                m.Role,
		HasDepartmentAccess: len(perms) > 0,
		Permissions:         perms,
		RouteKeys:           keys,
		Paths:               routemap.PathsFor(keys, workspaceID),
		Membership:          models.ResolvedMembership{Kind: models.MembershipDirect, Role: m.Role},
		Source:              models.SourceDepartments,
	}
}
