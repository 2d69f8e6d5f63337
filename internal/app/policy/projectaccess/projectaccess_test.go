package projectaccess_test

import (
	"reflect"
	"testing"

	"github.com/scopehq/scopehub/internal/app/policy/projectaccess"
	"github.com/scopehq/scopehub/internal/domain/models"
	"github.com/scopehq/scopehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestResolve_OrgRoleOverride(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := projectaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	ws := fixtures.CreateOrgWorkspace(ctx, org.ID, primitive.NewObjectID(), "Engineering")
	project := fixtures.CreateProject(ctx, ws.ID, primitive.NewObjectID(), "Apollo")

	for _, role := range []string{models.OrgRoleOwner, models.OrgRoleAdmin, models.OrgRoleModerator} {
		t.Run(role, func(t *testing.T) {
			user := fixtures.CreateUser(ctx, "Org "+role, role+"@test.com")
			fixtures.CreateOrgMembership(ctx, org.ID, user.ID, role)

			acc := resolver.Resolve(ctx, user.ID, project.ID)
			if !acc.HasAccess || !acc.IsOwner || !acc.IsAdmin {
				t.Fatalf("org %s should resolve as project owner: %+v", role, acc)
			}
			if !reflect.DeepEqual(acc.Permissions, models.AllProjectPermissions) {
				t.Errorf("permissions: got %v, want full enumeration", acc.Permissions)
			}
			if acc.Membership.Kind != models.MembershipSynthetic {
				t.Errorf("membership kind: got %q, want synthetic", acc.Membership.Kind)
			}
		})
	}

	// Plain org member gets no override.
	user := fixtures.CreateUser(ctx, "Org member", "orgmember@test.com")
	fixtures.CreateOrgMembership(ctx, org.ID, user.ID, models.OrgRoleMember)
	if acc := resolver.Resolve(ctx, user.ID, project.ID); acc.HasAccess {
		t.Errorf("plain org member should not reach a project: %+v", acc)
	}
}

func TestResolve_WorkspaceAdminOverride(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := projectaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	ws := fixtures.CreateOrgWorkspace(ctx, org.ID, primitive.NewObjectID(), "Engineering")
	project := fixtures.CreateProject(ctx, ws.ID, primitive.NewObjectID(), "Apollo")

	// All three admin spellings, including the legacy ones, trigger the
	// override without any project membership.
	for _, role := range []string{models.WorkspaceRoleAdmin, "administrator", "workspace_admin", models.WorkspaceRoleOwner} {
		t.Run(role, func(t *testing.T) {
			user := fixtures.CreateUser(ctx, "WS "+role, "ws-"+role+"@test.com")
			fixtures.CreateOrgMembership(ctx, org.ID, user.ID, models.OrgRoleMember)
			fixtures.CreateWorkspaceMembership(ctx, ws.ID, user.ID, role)

			acc := resolver.Resolve(ctx, user.ID, project.ID)
			if !acc.HasAccess || !acc.IsOwner {
				t.Fatalf("workspace %s should resolve as project owner: %+v", role, acc)
			}
			if !reflect.DeepEqual(acc.Permissions, models.AllProjectPermissions) {
				t.Errorf("permissions: got %v, want full enumeration", acc.Permissions)
			}
		})
	}
}

func TestResolve_WorkspaceMembershipAloneIsNotEnough(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := projectaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	ws := fixtures.CreateOrgWorkspace(ctx, org.ID, primitive.NewObjectID(), "Engineering")
	project := fixtures.CreateProject(ctx, ws.ID, primitive.NewObjectID(), "Apollo")

	user := fixtures.CreateUser(ctx, "WS member", "wsmember@test.com")
	fixtures.CreateWorkspaceMembership(ctx, ws.ID, user.ID, models.WorkspaceRoleMember)

	acc := resolver.Resolve(ctx, user.ID, project.ID)
	if acc.HasAccess {
		t.Errorf("workspace member without project membership got access: %+v", acc)
	}
}

func TestResolve_RoleDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := projectaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreatePersonalWorkspace(ctx, primitive.NewObjectID(), "Solo")
	project := fixtures.CreateProject(ctx, ws.ID, primitive.NewObjectID(), "Apollo")

	cases := []struct {
		role    string
		isOwner bool
		isAdmin bool
	}{
		{models.ProjectRoleOwner, true, true},
		{models.ProjectRoleAdmin, false, true},
		{models.ProjectRoleMember, false, false},
		{models.ProjectRoleViewer, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			user := fixtures.CreateUser(ctx, "P "+tc.role, "p-"+tc.role+"@test.com")
			fixtures.CreateProjectMember(ctx, project.ID, user.ID, tc.role)

			acc := resolver.Resolve(ctx, user.ID, project.ID)
			if !acc.HasAccess {
				t.Fatalf("%s has no access", tc.role)
			}
			if acc.IsOwner != tc.isOwner || acc.IsAdmin != tc.isAdmin {
				t.Errorf("%s: IsOwner=%v IsAdmin=%v, want %v/%v",
					tc.role, acc.IsOwner, acc.IsAdmin, tc.isOwner, tc.isAdmin)
			}
			if !reflect.DeepEqual(acc.Permissions, models.ProjectRolePermissions[tc.role]) {
				t.Errorf("%s permissions: got %v, want role defaults %v",
					tc.role, acc.Permissions, models.ProjectRolePermissions[tc.role])
			}
			if acc.Membership.Kind != models.MembershipDirect {
				t.Errorf("membership kind: got %q, want direct", acc.Membership.Kind)
			}
		})
	}
}

func TestResolve_LegacyRoleName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := projectaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreatePersonalWorkspace(ctx, primitive.NewObjectID(), "Solo")
	project := fixtures.CreateProject(ctx, ws.ID, primitive.NewObjectID(), "Apollo")

	user := fixtures.CreateUser(ctx, "Legacy Lou", "lou@test.com")
	fixtures.CreateLegacyProjectMember(ctx, project.ID, user.ID, "OWNER", nil)

	acc := resolver.Resolve(ctx, user.ID, project.ID)
	if !acc.HasAccess || !acc.IsOwner {
		t.Fatalf("legacy OWNER role name not recognized: %+v", acc)
	}
	if acc.Role != models.ProjectRoleOwner {
		t.Errorf("role: got %q, want canonical owner", acc.Role)
	}
}

func TestResolve_CustomRoleMergesOnTopOfDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := projectaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreatePersonalWorkspace(ctx, primitive.NewObjectID(), "Solo")
	project := fixtures.CreateProject(ctx, ws.ID, primitive.NewObjectID(), "Apollo")

	role := fixtures.CreateProjectRole(ctx, project.ID, "Scheduler",
		[]models.ProjectPermissionKey{models.ProjectPermTaskEdit})

	user := fixtures.CreateUser(ctx, "Custom Cam", "cam@test.com")
	fixtures.CreateLegacyProjectMember(ctx, project.ID, user.ID, "viewer", &role.ID)

	acc := resolver.Resolve(ctx, user.ID, project.ID)
	if !acc.HasAccess {
		t.Fatal("no access")
	}
	if !hasKey(acc.Permissions, models.ProjectPermTaskEdit) {
		t.Errorf("custom role grant missing: %v", acc.Permissions)
	}
	if !hasKey(acc.Permissions, models.ProjectPermTaskView) {
		t.Errorf("viewer defaults missing: %v", acc.Permissions)
	}
}

func TestResolve_CustomRoleFromOtherProjectIgnored(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := projectaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreatePersonalWorkspace(ctx, primitive.NewObjectID(), "Solo")
	project := fixtures.CreateProject(ctx, ws.ID, primitive.NewObjectID(), "Apollo")
	other := fixtures.CreateProject(ctx, ws.ID, primitive.NewObjectID(), "Zephyr")

	role := fixtures.CreateProjectRole(ctx, other.ID, "Wide Open", models.AllProjectPermissions)

	user := fixtures.CreateUser(ctx, "Sneaky Sue", "sue@test.com")
	fixtures.CreateLegacyProjectMember(ctx, project.ID, user.ID, "viewer", &role.ID)

	acc := resolver.Resolve(ctx, user.ID, project.ID)
	if !reflect.DeepEqual(acc.Permissions, models.ProjectRolePermissions[models.ProjectRoleViewer]) {
		t.Errorf("cross-project role leaked: got %v, want viewer defaults", acc.Permissions)
	}
}

func TestResolve_TeamAndDirectGrantsUnion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := projectaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreatePersonalWorkspace(ctx, primitive.NewObjectID(), "Solo")
	project := fixtures.CreateProject(ctx, ws.ID, primitive.NewObjectID(), "Apollo")
	granter := primitive.NewObjectID()

	user := fixtures.CreateUser(ctx, "Union Uma", "uma@test.com")
	fixtures.CreateProjectMember(ctx, project.ID, user.ID, models.ProjectRoleViewer)

	team := fixtures.CreateProjectTeam(ctx, project.ID, "Designers", user.ID)
	fixtures.GrantProjectPermissionToTeam(ctx, project.ID, team.ID, granter, models.ProjectPermAttachmentUpload)
	fixtures.GrantProjectPermissionToUser(ctx, project.ID, user.ID, granter, models.ProjectPermCommentCreate)

	acc := resolver.Resolve(ctx, user.ID, project.ID)

	for _, k := range []models.ProjectPermissionKey{
		models.ProjectPermTaskView,         // viewer default
		models.ProjectPermAttachmentUpload, // via team
		models.ProjectPermCommentCreate,    // direct grant
	} {
		if !hasKey(acc.Permissions, k) {
			t.Errorf("missing %s in %v", k, acc.Permissions)
		}
	}
	if len(acc.TeamIDs) != 1 || acc.TeamIDs[0] != team.ID {
		t.Errorf("team ids: got %v, want [%s]", acc.TeamIDs, team.ID.Hex())
	}

	// Enumeration order, no duplicates.
	if !isSubsequenceOf(acc.Permissions, models.AllProjectPermissions) {
		t.Errorf("permissions not in enumeration order: %v", acc.Permissions)
	}
}

func TestResolve_TeamGrantsScopedToProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := projectaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreatePersonalWorkspace(ctx, primitive.NewObjectID(), "Solo")
	project := fixtures.CreateProject(ctx, ws.ID, primitive.NewObjectID(), "Apollo")
	other := fixtures.CreateProject(ctx, ws.ID, primitive.NewObjectID(), "Zephyr")
	granter := primitive.NewObjectID()

	user := fixtures.CreateUser(ctx, "Scoped Sid", "sid@test.com")
	fixtures.CreateProjectMember(ctx, project.ID, user.ID, models.ProjectRoleViewer)

	// Same user is on a generously-granted team in the OTHER project.
	otherTeam := fixtures.CreateProjectTeam(ctx, other.ID, "Designers", user.ID)
	fixtures.GrantProjectPermissionToTeam(ctx, other.ID, otherTeam.ID, granter, models.ProjectPermProjectDelete)

	acc := resolver.Resolve(ctx, user.ID, project.ID)
	if hasKey(acc.Permissions, models.ProjectPermProjectDelete) {
		t.Errorf("grant from another project's team leaked: %v", acc.Permissions)
	}
	if len(acc.TeamIDs) != 0 {
		t.Errorf("team from another project reported: %v", acc.TeamIDs)
	}
}

func TestResolve_ProjectIsolationAcrossWorkspaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := projectaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	wsA := fixtures.CreateOrgWorkspace(ctx, org.ID, primitive.NewObjectID(), "Alpha")
	wsB := fixtures.CreateOrgWorkspace(ctx, org.ID, primitive.NewObjectID(), "Beta")
	projectB := fixtures.CreateProject(ctx, wsB.ID, primitive.NewObjectID(), "Apollo")

	// Admin of workspace A, member of the org, nothing in B.
	user := fixtures.CreateUser(ctx, "Admin Ada", "ada@test.com")
	fixtures.CreateOrgMembership(ctx, org.ID, user.ID, models.OrgRoleMember)
	fixtures.CreateWorkspaceMembership(ctx, wsA.ID, user.ID, models.WorkspaceRoleAdmin)

	acc := resolver.Resolve(ctx, user.ID, projectB.ID)
	if acc.HasAccess {
		t.Errorf("workspace A admin reached into workspace B project: %+v", acc)
	}
}

func TestResolve_RemovedMemberHasNoAccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := projectaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreatePersonalWorkspace(ctx, primitive.NewObjectID(), "Solo")
	project := fixtures.CreateProject(ctx, ws.ID, primitive.NewObjectID(), "Apollo")

	user := fixtures.CreateUser(ctx, "Removed Rex", "rex@test.com")
	m := fixtures.CreateProjectMember(ctx, project.ID, user.ID, models.ProjectRoleOwner)
	if _, err := db.Collection("project_members").UpdateByID(ctx, m.ID,
		map[string]any{"$set": map[string]any{"status": models.ProjectMemberRemoved}}); err != nil {
		t.Fatalf("flip status: %v", err)
	}

	acc := resolver.Resolve(ctx, user.ID, project.ID)
	if acc.HasAccess {
		t.Errorf("removed member still has access: %+v", acc)
	}
}

func TestResolve_MissingProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := projectaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Lost Lee", "lee@test.com")
	acc := resolver.Resolve(ctx, user.ID, primitive.NewObjectID())
	if acc.HasAccess {
		t.Errorf("expected zero access for missing project, got %+v", acc)
	}
}

func hasKey(keys []models.ProjectPermissionKey, want models.ProjectPermissionKey) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}

// isSubsequenceOf reports whether sub appears in order within full.
func isSubsequenceOf(sub, full []models.ProjectPermissionKey) bool {
	i := 0
	for _, k := range full {
		if i < len(sub) && sub[i] == k {
			i++
		}
	}
	return i == len(sub)
}
