// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/scopehq/scopehub/internal/app/system/status"
	"github.com/scopehq/scopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data. Documents
// are inserted directly, bypassing store validation, so tests can also
// construct the malformed shapes the resolvers must tolerate.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert %s fixture: %v", coll, err)
	}
}

// CreateUser creates a test user.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Status:     status.Active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateOrganization creates a test organization.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()
	now := time.Now().UTC()
	org := models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Status:    status.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "organizations", org)
	return org
}

// CreateOrgMembership joins a user to an organization with the given role.
func (f *Fixtures) CreateOrgMembership(ctx context.Context, orgID, userID primitive.ObjectID, role string) models.OrganizationMembership {
	f.t.Helper()
	return f.createOrgMembership(ctx, orgID, userID, role, status.Active)
}

// CreateInactiveOrgMembership creates a membership with inactive status,
// which the resolvers must treat as absent.
func (f *Fixtures) CreateInactiveOrgMembership(ctx context.Context, orgID, userID primitive.ObjectID, role string) models.OrganizationMembership {
	f.t.Helper()
	return f.createOrgMembership(ctx, orgID, userID, role, status.Inactive)
}

func (f *Fixtures) createOrgMembership(ctx context.Context, orgID, userID primitive.ObjectID, role, st string) models.OrganizationMembership {
	f.t.Helper()
	now := time.Now().UTC()
	m := models.OrganizationMembership{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
		Status:         st,
		InviteToken:    uuid.NewString(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, "organization_memberships", m)
	return m
}

// CreateDepartment creates a department in an organization.
func (f *Fixtures) CreateDepartment(ctx context.Context, orgID primitive.ObjectID, name string) models.Department {
	f.t.Helper()
	now := time.Now().UTC()
	d := models.Department{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Name:           name,
		NameCI:         text.Fold(name),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, "departments", d)
	return d
}

// GrantDepartmentPermission attaches a permission key to a department.
func (f *Fixtures) GrantDepartmentPermission(ctx context.Context, orgID, deptID primitive.ObjectID, key models.OrgPermissionKey) {
	f.t.Helper()
	f.insert(ctx, "department_permissions", models.DepartmentPermission{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		DepartmentID:   deptID,
		PermissionKey:  key,
		CreatedAt:      time.Now().UTC(),
	})
}

// AssignDepartment places an org member into a department.
func (f *Fixtures) AssignDepartment(ctx context.Context, orgID, membershipID, deptID primitive.ObjectID) {
	f.t.Helper()
	f.insert(ctx, "org_member_departments", models.OrgMemberDepartment{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		MembershipID:   membershipID,
		DepartmentID:   deptID,
		CreatedAt:      time.Now().UTC(),
	})
}

// GrantOrgMemberPermission inserts an explicit per-member grant.
func (f *Fixtures) GrantOrgMemberPermission(ctx context.Context, orgID, membershipID, grantedBy primitive.ObjectID, key models.OrgPermissionKey) models.OrgMemberPermission {
	f.t.Helper()
	g := models.OrgMemberPermission{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		MembershipID:   membershipID,
		PermissionKey:  key,
		GrantedBy:      grantedBy,
		GrantedAt:      time.Now().UTC(),
	}
	f.insert(ctx, "org_member_permissions", g)
	return g
}

// CreateOrgWorkspace creates a workspace attached to an organization.
func (f *Fixtures) CreateOrgWorkspace(ctx context.Context, orgID, ownerID primitive.ObjectID, name string) models.Workspace {
	f.t.Helper()
	now := time.Now().UTC()
	ws := models.Workspace{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		Kind:           models.WorkspaceKindOrg,
		OrganizationID: &orgID,
		OwnerID:        ownerID,
		Status:         status.Active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, "workspaces", ws)
	return ws
}

// CreatePersonalWorkspace creates a personal workspace for a user.
func (f *Fixtures) CreatePersonalWorkspace(ctx context.Context, ownerID primitive.ObjectID, name string) models.Workspace {
	f.t.Helper()
	now := time.Now().UTC()
	ws := models.Workspace{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Kind:      models.WorkspaceKindPersonal,
		OwnerID:   ownerID,
		Status:    status.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "workspaces", ws)
	return ws
}

// CreateWorkspaceMembership joins a user to a workspace with the given role.
func (f *Fixtures) CreateWorkspaceMembership(ctx context.Context, workspaceID, userID primitive.ObjectID, role string) models.WorkspaceMembership {
	f.t.Helper()
	now := time.Now().UTC()
	m := models.WorkspaceMembership{
		ID:          primitive.NewObjectID(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
		Status:      status.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "workspace_memberships", m)
	return m
}

// CreateProject creates a project in a workspace.
func (f *Fixtures) CreateProject(ctx context.Context, workspaceID, createdBy primitive.ObjectID, name string) models.Project {
	f.t.Helper()
	now := time.Now().UTC()
	p := models.Project{
		ID:          primitive.NewObjectID(),
		WorkspaceID: workspaceID,
		Name:        name,
		NameCI:      text.Fold(name),
		Status:      status.Active,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "projects", p)
	return p
}

// CreateProjectMember adds a user to a project with a canonical role.
func (f *Fixtures) CreateProjectMember(ctx context.Context, projectID, userID primitive.ObjectID, role string) models.ProjectMember {
	f.t.Helper()
	now := time.Now().UTC()
	m := models.ProjectMember{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		Status:    models.ProjectMemberActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "project_members", m)
	return m
}

// CreateLegacyProjectMember adds a member document shaped like the older
// creation path: a denormalized role name, optionally a custom role
// reference, and no canonical role field.
func (f *Fixtures) CreateLegacyProjectMember(ctx context.Context, projectID, userID primitive.ObjectID, roleName string, roleID *primitive.ObjectID) models.ProjectMember {
	f.t.Helper()
	now := time.Now().UTC()
	m := models.ProjectMember{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		UserID:    userID,
		RoleName:  roleName,
		RoleID:    roleID,
		Status:    models.ProjectMemberActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "project_members", m)
	return m
}

// CreateProjectRole creates a custom role document for a project.
func (f *Fixtures) CreateProjectRole(ctx context.Context, projectID primitive.ObjectID, name string, perms []models.ProjectPermissionKey) models.ProjectRoleDoc {
	f.t.Helper()
	r := models.ProjectRoleDoc{
		ID:          primitive.NewObjectID(),
		ProjectID:   projectID,
		Name:        name,
		Permissions: perms,
		CreatedAt:   time.Now().UTC(),
	}
	f.insert(ctx, "project_roles", r)
	return r
}

// CreateProjectTeam creates a team and adds the given users to it.
func (f *Fixtures) CreateProjectTeam(ctx context.Context, projectID primitive.ObjectID, name string, userIDs ...primitive.ObjectID) models.ProjectTeam {
	f.t.Helper()
	now := time.Now().UTC()
	team := models.ProjectTeam{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
	}
	f.insert(ctx, "project_teams", team)
	for _, uid := range userIDs {
		f.insert(ctx, "project_team_members", models.ProjectTeamMember{
			ID:        primitive.NewObjectID(),
			ProjectID: projectID,
			TeamID:    team.ID,
			UserID:    uid,
			CreatedAt: now,
		})
	}
	return team
}

// GrantProjectPermissionToTeam attaches a permission key to a team.
func (f *Fixtures) GrantProjectPermissionToTeam(ctx context.Context, projectID, teamID, grantedBy primitive.ObjectID, key models.ProjectPermissionKey) {
	f.t.Helper()
	f.insert(ctx, "project_permissions", models.ProjectPermission{
		ID:            primitive.NewObjectID(),
		ProjectID:     projectID,
		SubjectKind:   models.PermissionSubjectTeam,
		SubjectID:     teamID,
		PermissionKey: key,
		GrantedBy:     grantedBy,
		CreatedAt:     time.Now().UTC(),
	})
}

// GrantProjectPermissionToUser attaches a permission key to a user.
func (f *Fixtures) GrantProjectPermissionToUser(ctx context.Context, projectID, userID, grantedBy primitive.ObjectID, key models.ProjectPermissionKey) {
	f.t.Helper()
	f.insert(ctx, "project_permissions", models.ProjectPermission{
		ID:            primitive.NewObjectID(),
		ProjectID:     projectID,
		SubjectKind:   models.PermissionSubjectUser,
		SubjectID:     userID,
		PermissionKey: key,
		GrantedBy:     grantedBy,
		CreatedAt:     time.Now().UTC(),
	})
}
