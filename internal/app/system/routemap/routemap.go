// internal/app/system/routemap/routemap.go

// Package routemap maps resolved permission sets to navigable route keys
// and route keys to concrete paths. It is a pure lookup over static
// metadata: no I/O, no request state.
//
// A route key is an abstract identifier for an application surface,
// decoupled from its concrete path. Keys whose route requires workspace
// context cannot be resolved to a path without a workspace ID; PathsFor
// silently omits them when no workspace is supplied, so callers that
// cannot provide one still get the key list from RouteKeysFor.
package routemap

import (
	"strings"

	"github.com/scopehq/scopehub/internal/domain/models"
)

// RouteKey identifies a navigable application surface.
type RouteKey string

// Organization-level route keys.
const (
	RouteBilling           RouteKey = "billing"
	RouteMembers           RouteKey = "members"
	RouteDepartments       RouteKey = "departments"
	RouteOrgSettings       RouteKey = "org-settings"
	RouteAuditLog          RouteKey = "audit-log"
	RouteIntegrations      RouteKey = "integrations"
	RouteReports           RouteKey = "reports"
	RouteWorkspaceNew      RouteKey = "workspace-new"
	RouteWorkspaceSettings RouteKey = "workspace-settings"
	RouteUsage             RouteKey = "usage"
)

// Project-level route keys.
const (
	RouteProjectBoard    RouteKey = "project-board"
	RouteProjectTimeline RouteKey = "project-timeline"
	RouteProjectMembers  RouteKey = "project-members"
	RouteProjectTeams    RouteKey = "project-teams"
	RouteProjectSettings RouteKey = "project-settings"
)

// Category groups route keys by the surface they belong to.
type Category string

const (
	CategoryOrg       Category = "org"
	CategoryWorkspace Category = "workspace"
	CategoryProfile   Category = "profile"
	CategorySystem    Category = "system"
)

// Def is the static metadata for one route key. A route is unlocked
// when the caller holds any one of Permissions. Path may contain the
// ":workspaceID" placeholder, in which case RequiresWorkspace is set
// and the path is only resolvable with a workspace in hand.
type Def struct {
	Key               RouteKey
	Category          Category
	RequiresWorkspace bool
	Path              string
	Permissions       []models.OrgPermissionKey
}

// orgRoutes is the closed route table for organization permissions.
// Order is the navigation display order.
var orgRoutes = []Def{
	{Key: RouteBilling, Category: CategoryOrg, Path: "/org/billing",
		Permissions: []models.OrgPermissionKey{models.OrgPermBillingView, models.OrgPermBillingManage}},
	{Key: RouteMembers, Category: CategoryOrg, Path: "/org/members",
		Permissions: []models.OrgPermissionKey{models.OrgPermMembersView, models.OrgPermMembersManage}},
	{Key: RouteDepartments, Category: CategoryOrg, Path: "/org/departments",
		Permissions: []models.OrgPermissionKey{models.OrgPermDepartmentsManage}},
	{Key: RouteOrgSettings, Category: CategoryOrg, Path: "/org/settings",
		Permissions: []models.OrgPermissionKey{models.OrgPermSettingsManage}},
	{Key: RouteAuditLog, Category: CategoryOrg, Path: "/org/audit",
		Permissions: []models.OrgPermissionKey{models.OrgPermAuditView}},
	{Key: RouteIntegrations, Category: CategoryOrg, Path: "/org/integrations",
		Permissions: []models.OrgPermissionKey{models.OrgPermIntegrationsManage}},
	{Key: RouteReports, Category: CategoryWorkspace, RequiresWorkspace: true,
		Path: "/workspaces/:workspaceID/reports",
		Permissions: []models.OrgPermissionKey{models.OrgPermReportsView}},
	{Key: RouteWorkspaceNew, Category: CategoryWorkspace, Path: "/workspaces/new",
		Permissions: []models.OrgPermissionKey{models.OrgPermWorkspaceCreate}},
	{Key: RouteWorkspaceSettings, Category: CategoryWorkspace, RequiresWorkspace: true,
		Path: "/workspaces/:workspaceID/settings",
		Permissions: []models.OrgPermissionKey{models.OrgPermWorkspaceManage}},
	{Key: RouteUsage, Category: CategoryProfile, Path: "/profile/usage",
		Permissions: []models.OrgPermissionKey{models.OrgPermUsageView}},
}

// projectRoutes maps project permissions to project surfaces. Project
// routes are keyed only; their paths are project-relative and resolved
// by the consuming UI, not here.
var projectRoutes = []struct {
	Key         RouteKey
	Permissions []models.ProjectPermissionKey
}{
	{RouteProjectBoard, []models.ProjectPermissionKey{models.ProjectPermTaskView}},
	{RouteProjectTimeline, []models.ProjectPermissionKey{models.ProjectPermTimelineView}},
	{RouteProjectMembers, []models.ProjectPermissionKey{models.ProjectPermMemberInvite, models.ProjectPermMemberRemove}},
	{RouteProjectTeams, []models.ProjectPermissionKey{models.ProjectPermTeamManage}},
	{RouteProjectSettings, []models.ProjectPermissionKey{models.ProjectPermSettingsEdit, models.ProjectPermProjectDelete}},
}

// RouteKeysFor returns the org route keys unlocked by perms, in table
// order. An empty permission set unlocks nothing.
func RouteKeysFor(perms []models.OrgPermissionKey) []RouteKey {
	if len(perms) == 0 {
		return nil
	}
	held := make(map[models.OrgPermissionKey]struct{}, len(perms))
	for _, p := range perms {
		held[p] = struct{}{}
	}
	var keys []RouteKey
	for _, def := range orgRoutes {
		for _, need := range def.Permissions {
			if _, ok := held[need]; ok {
				keys = append(keys, def.Key)
				break
			}
		}
	}
	return keys
}

// ProjectRouteKeysFor returns the project route keys unlocked by perms.
func ProjectRouteKeysFor(perms []models.ProjectPermissionKey) []RouteKey {
	if len(perms) == 0 {
		return nil
	}
	held := make(map[models.ProjectPermissionKey]struct{}, len(perms))
	for _, p := range perms {
		held[p] = struct{}{}
	}
	var keys []RouteKey
	for _, def := range projectRoutes {
		for _, need := range def.Permissions {
			if _, ok := held[need]; ok {
				keys = append(keys, def.Key)
				break
			}
		}
	}
	return keys
}

// PathsFor resolves route keys to concrete paths. Keys that require
// workspace context are omitted when workspaceID is empty; callers that
// cannot name a workspace get org-only paths and must work from the
// route-key list for the rest.
func PathsFor(keys []RouteKey, workspaceID string) []string {
	if len(keys) == 0 {
		return nil
	}
	wanted := make(map[RouteKey]struct{}, len(keys))
	for _, k := range keys {
		wanted[k] = struct{}{}
	}
	var paths []string
	for _, def := range orgRoutes {
		if _, ok := wanted[def.Key]; !ok {
			continue
		}
		if def.RequiresWorkspace {
			if workspaceID == "" {
				continue
			}
			paths = append(paths, strings.Replace(def.Path, ":workspaceID", workspaceID, 1))
			continue
		}
		paths = append(paths, def.Path)
	}
	return paths
}

// Lookup returns the metadata for an org route key.
func Lookup(key RouteKey) (Def, bool) {
	for _, def := range orgRoutes {
		if def.Key == key {
			return def, true
		}
	}
	return Def{}, false
}
