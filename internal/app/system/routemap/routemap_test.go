package routemap_test

import (
	"testing"

	"github.com/scopehq/scopehub/internal/app/system/routemap"
	"github.com/scopehq/scopehub/internal/domain/models"
)

func TestRouteKeysFor_Empty(t *testing.T) {
	if keys := routemap.RouteKeysFor(nil); len(keys) != 0 {
		t.Errorf("expected no route keys for empty permissions, got %v", keys)
	}
}

func TestRouteKeysFor_AnyOfUnlocks(t *testing.T) {
	// billing-view alone unlocks the billing route.
	keys := routemap.RouteKeysFor([]models.OrgPermissionKey{models.OrgPermBillingView})
	if len(keys) != 1 || keys[0] != routemap.RouteBilling {
		t.Fatalf("expected [billing], got %v", keys)
	}

	// billing-manage unlocks the same route, not a second one.
	keys = routemap.RouteKeysFor([]models.OrgPermissionKey{
		models.OrgPermBillingView, models.OrgPermBillingManage,
	})
	if len(keys) != 1 || keys[0] != routemap.RouteBilling {
		t.Fatalf("expected [billing] with both billing perms, got %v", keys)
	}
}

func TestRouteKeysFor_FullEnumeration(t *testing.T) {
	keys := routemap.RouteKeysFor(models.AllOrgPermissions)

	// Every route must be unlocked by the full permission set.
	want := []routemap.RouteKey{
		routemap.RouteBilling,
		routemap.RouteMembers,
		routemap.RouteDepartments,
		routemap.RouteOrgSettings,
		routemap.RouteAuditLog,
		routemap.RouteIntegrations,
		routemap.RouteReports,
		routemap.RouteWorkspaceNew,
		routemap.RouteWorkspaceSettings,
		routemap.RouteUsage,
	}
	if len(keys) != len(want) {
		t.Fatalf("expected %d route keys, got %d: %v", len(want), len(keys), keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("key %d: got %q, want %q", i, keys[i], k)
		}
	}
}

func TestPathsFor_WithoutWorkspace(t *testing.T) {
	keys := []routemap.RouteKey{routemap.RouteMembers, routemap.RouteReports}

	paths := routemap.PathsFor(keys, "")
	if len(paths) != 1 || paths[0] != "/org/members" {
		t.Fatalf("expected workspace-scoped route omitted without workspace ID, got %v", paths)
	}
}

func TestPathsFor_WithWorkspace(t *testing.T) {
	keys := []routemap.RouteKey{routemap.RouteReports, routemap.RouteWorkspaceSettings}

	paths := routemap.PathsFor(keys, "ws123")
	want := []string{"/workspaces/ws123/reports", "/workspaces/ws123/settings"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path %d: got %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestPathsFor_WorkspaceNewNeedsNoContext(t *testing.T) {
	// workspace-new is workspace category but has a fixed path.
	paths := routemap.PathsFor([]routemap.RouteKey{routemap.RouteWorkspaceNew}, "")
	if len(paths) != 1 || paths[0] != "/workspaces/new" {
		t.Errorf("expected /workspaces/new without workspace context, got %v", paths)
	}
}

func TestProjectRouteKeysFor(t *testing.T) {
	keys := routemap.ProjectRouteKeysFor([]models.ProjectPermissionKey{
		models.ProjectPermTaskView,
		models.ProjectPermTimelineView,
	})
	if len(keys) != 2 || keys[0] != routemap.RouteProjectBoard || keys[1] != routemap.RouteProjectTimeline {
		t.Fatalf("expected [project-board project-timeline], got %v", keys)
	}

	if keys := routemap.ProjectRouteKeysFor(nil); len(keys) != 0 {
		t.Errorf("expected no project route keys for empty permissions, got %v", keys)
	}
}

func TestLookup(t *testing.T) {
	def, ok := routemap.Lookup(routemap.RouteReports)
	if !ok {
		t.Fatal("expected reports route to exist")
	}
	if def.Category != routemap.CategoryWorkspace || !def.RequiresWorkspace {
		t.Errorf("reports route metadata wrong: %+v", def)
	}

	if _, ok := routemap.Lookup("nope"); ok {
		t.Error("expected unknown route key to miss")
	}
}
