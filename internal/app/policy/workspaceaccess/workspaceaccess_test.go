package workspaceaccess_test

import (
	"testing"

	"github.com/scopehq/scopehub/internal/app/policy/workspaceaccess"
	"github.com/scopehq/scopehub/internal/domain/models"
	"github.com/scopehq/scopehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestResolve_OrgOwnerOverride(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := workspaceaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	owner := fixtures.CreateUser(ctx, "Olive Owner", "olive@test.com")
	fixtures.CreateOrgMembership(ctx, org.ID, owner.ID, models.OrgRoleOwner)

	// No workspace membership at all.
	ws := fixtures.CreateOrgWorkspace(ctx, org.ID, owner.ID, "Engineering")

	acc := resolver.Resolve(ctx, owner.ID, ws.ID)

	if !acc.CanList || !acc.CanRead || !acc.CanWrite || !acc.CanDelete {
		t.Fatalf("org owner should have every capability: %+v", acc)
	}
	if !acc.IsOrgOwner {
		t.Error("IsOrgOwner not set")
	}
	if acc.Membership.Kind != models.MembershipSynthetic {
		t.Errorf("membership kind: got %q, want synthetic", acc.Membership.Kind)
	}
	if acc.Role != models.WorkspaceRoleOwner {
		t.Errorf("role: got %q, want owner", acc.Role)
	}
}

func TestResolve_OrgOwnerKeepsDirectMembershipRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := workspaceaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	owner := fixtures.CreateUser(ctx, "Olive Owner", "olive@test.com")
	fixtures.CreateOrgMembership(ctx, org.ID, owner.ID, models.OrgRoleOwner)
	ws := fixtures.CreateOrgWorkspace(ctx, org.ID, owner.ID, "Engineering")
	fixtures.CreateWorkspaceMembership(ctx, ws.ID, owner.ID, models.WorkspaceRoleMember)

	acc := resolver.Resolve(ctx, owner.ID, ws.ID)

	// Capabilities come from the override, but the reported membership
	// is the real one.
	if !acc.CanDelete {
		t.Error("org owner capabilities missing")
	}
	if acc.Membership.Kind != models.MembershipDirect || acc.Role != models.WorkspaceRoleMember {
		t.Errorf("expected direct member membership, got %+v", acc.Membership)
	}
}

func TestResolve_DepartmentUnlocksListingOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := workspaceaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	user := fixtures.CreateUser(ctx, "Manny Member", "manny@test.com")
	m := fixtures.CreateOrgMembership(ctx, org.ID, user.ID, models.OrgRoleMember)
	dept := fixtures.CreateDepartment(ctx, org.ID, "Billing")
	fixtures.GrantDepartmentPermission(ctx, org.ID, dept.ID, models.OrgPermBillingView)
	fixtures.AssignDepartment(ctx, org.ID, m.ID, dept.ID)

	ws := fixtures.CreateOrgWorkspace(ctx, org.ID, primitive.NewObjectID(), "Engineering")

	acc := resolver.Resolve(ctx, user.ID, ws.ID)

	if !acc.CanList {
		t.Error("department access should unlock listing")
	}
	if acc.CanRead || acc.CanWrite || acc.CanDelete {
		t.Errorf("department access must not unlock open/write/delete: %+v", acc)
	}
}

func TestResolve_DirectRoleThresholds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := workspaceaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	ws := fixtures.CreateOrgWorkspace(ctx, org.ID, primitive.NewObjectID(), "Engineering")

	cases := []struct {
		role                          string
		canRead, canWrite, canDelete bool
	}{
		{models.WorkspaceRoleOwner, true, true, true},
		{models.WorkspaceRoleAdmin, true, true, true},
		{"administrator", true, true, true},
		{"workspace_admin", true, true, true},
		{models.WorkspaceRoleMember, true, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			user := fixtures.CreateUser(ctx, "User "+tc.role, tc.role+"@test.com")
			fixtures.CreateOrgMembership(ctx, org.ID, user.ID, models.OrgRoleMember)
			fixtures.CreateWorkspaceMembership(ctx, ws.ID, user.ID, tc.role)

			acc := resolver.Resolve(ctx, user.ID, ws.ID)
			if !acc.CanList {
				t.Error("direct member should be able to list")
			}
			if acc.CanRead != tc.canRead || acc.CanWrite != tc.canWrite || acc.CanDelete != tc.canDelete {
				t.Errorf("role %q: got read=%v write=%v delete=%v, want %v/%v/%v",
					tc.role, acc.CanRead, acc.CanWrite, acc.CanDelete,
					tc.canRead, tc.canWrite, tc.canDelete)
			}
		})
	}
}

func TestResolve_PersonalWorkspaceRequiresDirectMembership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := workspaceaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "Alice A", "alice@test.com")
	bob := fixtures.CreateUser(ctx, "Bob B", "bob@test.com")
	ws := fixtures.CreatePersonalWorkspace(ctx, alice.ID, "Alice's Space")
	fixtures.CreateWorkspaceMembership(ctx, ws.ID, alice.ID, models.WorkspaceRoleOwner)

	aliceAcc := resolver.Resolve(ctx, alice.ID, ws.ID)
	if !aliceAcc.CanList || !aliceAcc.CanDelete {
		t.Errorf("personal owner should have full access: %+v", aliceAcc)
	}

	// Bob owns an org elsewhere; that buys nothing on Alice's personal
	// workspace.
	org := fixtures.CreateOrganization(ctx, "Bob Corp")
	fixtures.CreateOrgMembership(ctx, org.ID, bob.ID, models.OrgRoleOwner)

	bobAcc := resolver.Resolve(ctx, bob.ID, ws.ID)
	if bobAcc.CanList || bobAcc.CanRead || bobAcc.CanWrite || bobAcc.CanDelete {
		t.Errorf("non-member on personal workspace should have nothing: %+v", bobAcc)
	}
}

func TestResolve_MissingWorkspace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	resolver := workspaceaccess.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Manny Member", "manny@test.com")
	acc := resolver.Resolve(ctx, user.ID, primitive.NewObjectID())
	if acc != (workspaceaccess.WorkspaceAccess{}) {
		t.Errorf("expected zero-access result, got %+v", acc)
	}
}
