package orgaccess_test

import (
	"reflect"
	"testing"

	"github.com/scopehq/scopehub/internal/app/policy/orgaccess"
	"github.com/scopehq/scopehub/internal/app/system/routemap"
	"github.com/scopehq/scopehub/internal/domain/models"
	"github.com/scopehq/scopehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestResolve_OwnerBypass(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := orgaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	owner := fixtures.CreateUser(ctx, "Olive Owner", "olive@test.com")
	fixtures.CreateOrgMembership(ctx, org.ID, owner.ID, models.OrgRoleOwner)

	acc := resolver.Resolve(ctx, owner.ID, org.ID)

	if !acc.HasAccess || !acc.IsOwner {
		t.Fatalf("owner access: got HasAccess=%v IsOwner=%v", acc.HasAccess, acc.IsOwner)
	}
	if !reflect.DeepEqual(acc.Permissions, models.AllOrgPermissions) {
		t.Errorf("owner permissions: got %v, want full enumeration", acc.Permissions)
	}
	// Owners never owe their access to departments.
	if acc.HasDepartmentAccess {
		t.Error("owner should not report department access")
	}
	if acc.Membership.Kind != models.MembershipDirect {
		t.Errorf("membership kind: got %q, want direct", acc.Membership.Kind)
	}
	if len(acc.RouteKeys) != len(routemap.RouteKeysFor(models.AllOrgPermissions)) {
		t.Errorf("owner route keys: got %d", len(acc.RouteKeys))
	}
}

func TestResolve_OwnerBypassIgnoresDepartments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := orgaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	owner := fixtures.CreateUser(ctx, "Olive Owner", "olive@test.com")
	m := fixtures.CreateOrgMembership(ctx, org.ID, owner.ID, models.OrgRoleOwner)

	// Even a department holding a single permission must not narrow an
	// owner's set.
	dept := fixtures.CreateDepartment(ctx, org.ID, "Billing")
	fixtures.GrantDepartmentPermission(ctx, org.ID, dept.ID, models.OrgPermBillingView)
	fixtures.AssignDepartment(ctx, org.ID, m.ID, dept.ID)

	acc := resolver.Resolve(ctx, owner.ID, org.ID)
	if !reflect.DeepEqual(acc.Permissions, models.AllOrgPermissions) {
		t.Errorf("owner permissions narrowed by department: got %v", acc.Permissions)
	}
}

func TestResolve_NoDepartmentMeansNoAccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := orgaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	user := fixtures.CreateUser(ctx, "Manny Member", "manny@test.com")
	fixtures.CreateOrgMembership(ctx, org.ID, user.ID, models.OrgRoleAdmin)

	acc := resolver.Resolve(ctx, user.ID, org.ID)

	if acc.HasAccess {
		t.Error("member without departments should have no access")
	}
	if len(acc.Permissions) != 0 || len(acc.RouteKeys) != 0 {
		t.Errorf("expected empty permission and route sets, got %v / %v", acc.Permissions, acc.RouteKeys)
	}
	// The membership itself is still reported.
	if acc.Role != models.OrgRoleAdmin {
		t.Errorf("role: got %q, want admin", acc.Role)
	}
}

func TestResolve_DepartmentUnion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := orgaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	user := fixtures.CreateUser(ctx, "Manny Member", "manny@test.com")
	m := fixtures.CreateOrgMembership(ctx, org.ID, user.ID, models.OrgRoleMember)

	// Two departments with overlapping grants; the result is the
	// deduplicated union.
	billing := fixtures.CreateDepartment(ctx, org.ID, "Billing")
	fixtures.GrantDepartmentPermission(ctx, org.ID, billing.ID, models.OrgPermBillingView)
	fixtures.GrantDepartmentPermission(ctx, org.ID, billing.ID, models.OrgPermMembersView)

	people := fixtures.CreateDepartment(ctx, org.ID, "People")
	fixtures.GrantDepartmentPermission(ctx, org.ID, people.ID, models.OrgPermMembersView)
	fixtures.GrantDepartmentPermission(ctx, org.ID, people.ID, models.OrgPermMembersManage)

	fixtures.AssignDepartment(ctx, org.ID, m.ID, billing.ID)
	fixtures.AssignDepartment(ctx, org.ID, m.ID, people.ID)

	acc := resolver.Resolve(ctx, user.ID, org.ID)

	want := []models.OrgPermissionKey{
		models.OrgPermBillingView,
		models.OrgPermMembersView,
		models.OrgPermMembersManage,
	}
	if !reflect.DeepEqual(acc.Permissions, want) {
		t.Errorf("union: got %v, want %v", acc.Permissions, want)
	}
	if !acc.HasAccess || !acc.HasDepartmentAccess {
		t.Errorf("expected department-backed access, got HasAccess=%v HasDepartmentAccess=%v",
			acc.HasAccess, acc.HasDepartmentAccess)
	}
	if acc.IsOwner {
		t.Error("member must not be owner")
	}
}

func TestResolve_InactiveMembershipTreatedAsAbsent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := orgaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	user := fixtures.CreateUser(ctx, "Gone Gus", "gus@test.com")
	fixtures.CreateInactiveOrgMembership(ctx, org.ID, user.ID, models.OrgRoleOwner)

	acc := resolver.Resolve(ctx, user.ID, org.ID)
	if acc.HasAccess || acc.IsOwner || acc.Role != "" {
		t.Errorf("inactive membership leaked through: %+v", acc)
	}
}

func TestResolve_NonMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := orgaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	stranger := fixtures.CreateUser(ctx, "Strange Sam", "sam@test.com")

	acc := resolver.Resolve(ctx, stranger.ID, org.ID)
	if !reflect.DeepEqual(acc, orgaccess.OrgAccess{}) {
		t.Errorf("expected zero-access result, got %+v", acc)
	}

	// Same for an org that does not exist at all.
	acc = resolver.Resolve(ctx, stranger.ID, primitive.NewObjectID())
	if acc.HasAccess {
		t.Errorf("expected zero access for missing org, got %+v", acc)
	}
}

func TestResolve_RepeatCallsAreStable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := orgaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	user := fixtures.CreateUser(ctx, "Manny Member", "manny@test.com")
	m := fixtures.CreateOrgMembership(ctx, org.ID, user.ID, models.OrgRoleMember)
	dept := fixtures.CreateDepartment(ctx, org.ID, "Billing")
	fixtures.GrantDepartmentPermission(ctx, org.ID, dept.ID, models.OrgPermBillingView)
	fixtures.AssignDepartment(ctx, org.ID, m.ID, dept.ID)

	first := resolver.Resolve(ctx, user.ID, org.ID)
	second := resolver.Resolve(ctx, user.ID, org.ID)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolution not stable:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestResolveWithWorkspace_EmitsWorkspacePaths(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := orgaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	owner := fixtures.CreateUser(ctx, "Olive Owner", "olive@test.com")
	fixtures.CreateOrgMembership(ctx, org.ID, owner.ID, models.OrgRoleOwner)

	wsID := primitive.NewObjectID()
	with := resolver.ResolveWithWorkspace(ctx, owner.ID, org.ID, wsID)
	without := resolver.Resolve(ctx, owner.ID, org.ID)

	// Workspace-scoped routes only materialize as paths when a
	// workspace is in context.
	if len(with.Paths) <= len(without.Paths) {
		t.Errorf("expected more paths with workspace context: with=%d without=%d",
			len(with.Paths), len(without.Paths))
	}
	found := false
	for _, p := range with.Paths {
		if p == "/workspaces/"+wsID.Hex()+"/settings" {
			found = true
		}
	}
	if !found {
		t.Errorf("workspace settings path missing from %v", with.Paths)
	}
}
