// internal/app/policy/projectaccess/projectaccess.go

// Package projectaccess resolves a user's role and merged permission
// set on a single project. Override evaluation is ordered; each step
// returns immediately on match:
//
//  1. Org owner/admin/moderator on the project's organization:
//     synthetic project-owner access with the full enumeration.
//  2. Workspace owner/admin on the project's workspace: same synthetic
//     result.
//  3. Direct project membership; no record at all means no access.
//     Workspace membership alone never reaches into a project.
//
// For direct members the permission set is the deduplicated union of
// three sources: role defaults (plus a custom role document if the
// membership references one), grants to the member's teams in this
// project, and grants to the user directly. Teams are project-scoped;
// a grant to a team in another project never leaks in.
package projectaccess

import (
	"context"

	orgmembershipstore "github.com/scopehq/scopehub/internal/app/store/orgmemberships"
	projectmemberstore "github.com/scopehq/scopehub/internal/app/store/projectmembers"
	projectpermissionstore "github.com/scopehq/scopehub/internal/app/store/projectpermissions"
	projectstore "github.com/scopehq/scopehub/internal/app/store/projects"
	projectteamstore "github.com/scopehq/scopehub/internal/app/store/projectteams"
	workspacemembershipstore "github.com/scopehq/scopehub/internal/app/store/workspacememberships"
	workspacestore "github.com/scopehq/scopehub/internal/app/store/workspaces"
	"github.com/scopehq/scopehub/internal/app/system/routemap"
	"github.com/scopehq/scopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ProjectAccess is the resolver's immutable output. The zero value is
// the zero-access result.
type ProjectAccess struct {
	HasAccess bool   `json:"has_access"`
	Role      string `json:"role,omitempty"`
	IsOwner   bool   `json:"is_owner"`
	IsAdmin   bool   `json:"is_admin"`

	Permissions []models.ProjectPermissionKey `json:"permissions,omitempty"`
	TeamIDs     []primitive.ObjectID          `json:"team_ids,omitempty"`
	RouteKeys   []routemap.RouteKey           `json:"route_keys,omitempty"`

	Membership models.ResolvedMembership `json:"membership,omitempty"`
}

type Resolver struct {
	projects             *projectstore.Store
	workspaces           *workspacestore.Store
	workspaceMemberships *workspacemembershipstore.Store
	orgMemberships       *orgmembershipstore.Store
	members              *projectmemberstore.Store
	roles                *projectmemberstore.RoleStore
	teams                *projectteamstore.Store
	grants               *projectpermissionstore.Store
	log                  *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.L()
	}
	return &Resolver{
		projects:             projectstore.New(db),
		workspaces:           workspacestore.New(db),
		workspaceMemberships: workspacemembershipstore.New(db),
		orgMemberships:       orgmembershipstore.New(db),
		members:              projectmemberstore.New(db),
		roles:                projectmemberstore.NewRoleStore(db),
		teams:                projectteamstore.New(db),
		grants:               projectpermissionstore.New(db),
		log:                  logger,
	}
}

// syntheticOwner is the result fabricated by the org and workspace
// override paths. It is never backed by a project membership document.
func syntheticOwner() ProjectAccess {
	return ProjectAccess{
		HasAccess:   true,
		Role:        models.ProjectRoleOwner,
		IsOwner:     true,
		IsAdmin:     true,
		Permissions: models.AllProjectPermissions,
		RouteKeys:   routemap.ProjectRouteKeysFor(models.AllProjectPermissions),
		Membership: models.ResolvedMembership{
			Kind: models.MembershipSynthetic,
			Role: models.ProjectRoleOwner,
		},
	}
}

// Resolve computes the user's access to a project. It never returns an
// error: a missing project resolves to zero access silently, and any
// store failure resolves to zero access with a log line (fail closed).
func (r *Resolver) Resolve(ctx context.Context, userID, projectID primitive.ObjectID) ProjectAccess {
	project, err := r.projects.GetByID(ctx, projectID)
	if err == projectstore.ErrNotFound {
		return ProjectAccess{}
	}
	if err != nil {
		r.log.Warn("project access: project lookup failed, failing closed",
			zap.Error(err), zap.String("project_id", projectID.Hex()))
		return ProjectAccess{}
	}

	ws, err := r.workspaces.GetByID(ctx, project.WorkspaceID)
	if err == workspacestore.ErrNotFound {
		return ProjectAccess{}
	}
	if err != nil {
		r.log.Warn("project access: workspace lookup failed, failing closed",
			zap.Error(err), zap.String("workspace_id", project.WorkspaceID.Hex()))
		return ProjectAccess{}
	}

	// Step 1: organization override.
	if !ws.IsPersonal() {
		om, err := r.orgMemberships.GetActive(ctx, *ws.OrganizationID, userID)
		switch {
		case err == nil:
			switch om.Role {
			case models.OrgRoleOwner, models.OrgRoleAdmin, models.OrgRoleModerator:
				return syntheticOwner()
			}
		case err == orgmembershipstore.ErrNotFound:
			// fall through to workspace override
		default:
			r.log.Warn("project access: org membership lookup failed, failing closed",
				zap.Error(err), zap.String("project_id", projectID.Hex()), zap.String("user_id", userID.Hex()))
			return ProjectAccess{}
		}
	}

	// Step 2: workspace-admin override.
	wm, err := r.workspaceMemberships.GetActive(ctx, project.WorkspaceID, userID)
	switch {
	case err == nil:
		if models.IsWorkspaceAdminRole(wm.Role) {
			return syntheticOwner()
		}
	case err == workspacemembershipstore.ErrNotFound:
		// workspace membership by itself grants nothing at project scope
	default:
		r.log.Warn("project access: workspace membership lookup failed, failing closed",
			zap.Error(err), zap.String("project_id", projectID.Hex()), zap.String("user_id", userID.Hex()))
		return ProjectAccess{}
	}

	// Step 3: direct project membership.
	pm, err := r.members.GetActive(ctx, projectID, userID)
	if err == projectmemberstore.ErrNotFound {
		return ProjectAccess{}
	}
	if err != nil {
		r.log.Warn("project access: project membership lookup failed, failing closed",
			zap.Error(err), zap.String("project_id", projectID.Hex()), zap.String("user_id", userID.Hex()))
		return ProjectAccess{}
	}

	// Step 4: resolve the role. The canonical enum field wins; older
	// documents carry only a denormalized role name.
	role := models.ProjectRoleFromName(pm.Role)
	if role == "" {
		role = models.ProjectRoleFromName(pm.RoleName)
	}
	if role == "" && pm.RoleID == nil {
		r.log.Warn("project access: membership has no resolvable role",
			zap.String("project_id", projectID.Hex()), zap.String("member_id", pm.ID.Hex()))
		return ProjectAccess{}
	}

	// Step 5: role defaults plus any custom role document.
	merged := make(map[models.ProjectPermissionKey]struct{})
	for _, k := range models.ProjectRolePermissions[role] {
		merged[k] = struct{}{}
	}
	if pm.RoleID != nil {
		doc, err := r.roles.GetByID(ctx, *pm.RoleID)
		if err != nil && err != projectmemberstore.ErrNotFound {
			r.log.Warn("project access: custom role lookup failed, failing closed",
				zap.Error(err), zap.String("role_id", pm.RoleID.Hex()))
			return ProjectAccess{}
		}
		if err == nil {
			if doc.ProjectID == projectID {
				for _, k := range doc.Permissions {
					merged[k] = struct{}{}
				}
			} else {
				r.log.Warn("project access: custom role belongs to another project, ignoring",
					zap.String("role_id", pm.RoleID.Hex()), zap.String("project_id", projectID.Hex()))
			}
		}
	}

	// Step 6: team grants, scoped to this project.
	teamIDs, err := r.teams.TeamIDsForUser(ctx, projectID, userID)
	if err != nil {
		r.log.Warn("project access: team lookup failed, failing closed",
			zap.Error(err), zap.String("project_id", projectID.Hex()), zap.String("user_id", userID.Hex()))
		return ProjectAccess{}
	}
	teamKeys, err := r.grants.KeysForTeams(ctx, projectID, teamIDs)
	if err != nil {
		r.log.Warn("project access: team grant lookup failed, failing closed",
			zap.Error(err), zap.String("project_id", projectID.Hex()))
		return ProjectAccess{}
	}
	for _, k := range teamKeys {
		merged[k] = struct{}{}
	}

	// Step 7: direct user grants.
	userKeys, err := r.grants.KeysForUser(ctx, projectID, userID)
	if err != nil {
		r.log.Warn("project access: user grant lookup failed, failing closed",
			zap.Error(err), zap.String("project_id", projectID.Hex()), zap.String("user_id", userID.Hex()))
		return ProjectAccess{}
	}
	for _, k := range userKeys {
		merged[k] = struct{}{}
	}

	// Step 8: stable, deduplicated union in enumeration order.
	var perms []models.ProjectPermissionKey
	for _, k := range models.AllProjectPermissions {
		if _, ok := merged[k]; ok {
			perms = append(perms, k)
		}
	}

	// Step 9: derived booleans and the owner invariant. An owner with an
	// empty permission set indicates corrupted role data; it is logged
	// and the request continues.
	isOwner := role == models.ProjectRoleOwner
	isAdmin := isOwner || role == models.ProjectRoleAdmin
	if isOwner && len(perms) == 0 {
		r.log.Error("project access: resolved owner has empty permission set",
			zap.String("project_id", projectID.Hex()), zap.String("member_id", pm.ID.Hex()))
	}

	return ProjectAccess{
		HasAccess:   true,
		Role:        role,
		IsOwner:     isOwner,
		IsAdmin:     isAdmin,
		Permissions: perms,
		TeamIDs:     teamIDs,
		RouteKeys:   routemap.ProjectRouteKeysFor(perms),
		Membership:  models.ResolvedMembership{Kind: models.MembershipDirect, Role: role},
	}
}
