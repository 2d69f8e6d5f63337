// internal/app/store/departments/departmentstore.go
package departmentstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/scopehq/scopehub/internal/app/system/htmlsanitize"
	"github.com/scopehq/scopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store covers the department collection family: departments, their
// permission grants, and member-department assignments.
type Store struct {
	departments *mongo.Collection
	perms       *mongo.Collection
	assignments *mongo.Collection
}

var (
	ErrNotFound            = errors.New("department not found")
	ErrDuplicateDepartment = errors.New("a department with this name already exists in the organization")
	ErrDuplicateAssignment = errors.New("member is already assigned to this department")
	ErrDuplicateGrant      = errors.New("permission is already granted to this department")
	ErrInvalidPermission   = errors.New("unknown organization permission key")
)

func New(db *mongo.Database) *Store {
	return &Store{
		departments: db.Collection("departments"),
		perms:       db.Collection("department_permissions"),
		assignments: db.Collection("org_member_departments"),
	}
}

func (s *Store) Create(ctx context.Context, orgID primitive.ObjectID, name, description string) (models.Department, error) {
	now := time.Now().UTC()
	d := models.Department{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Name:           htmlsanitize.Strip(name),
		Description:    htmlsanitize.Sanitize(description),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	d.NameCI = text.Fold(d.Name)
	if _, err := s.departments.InsertOne(ctx, d); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Department{}, ErrDuplicateDepartment
		}
		return models.Department{}, err
	}
	return d, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Department, error) {
	var d models.Department
	err := s.departments.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return models.Department{}, ErrNotFound
	}
	if err != nil {
		return models.Department{}, err
	}
	return d, nil
}

// ListByOrg returns an organization's departments.
func (s *Store) ListByOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.Department, error) {
	cur, err := s.departments.Find(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var ds []models.Department
	if err := cur.All(ctx, &ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// GrantPermission adds a permission key to a department. The key is
// validated against the closed enumeration before anything is written.
func (s *Store) GrantPermission(ctx context.Context, orgID, departmentID primitive.ObjectID, key models.OrgPermissionKey) error {
	if !models.IsValidOrgPermission(key) {
		return ErrInvalidPermission
	}
	doc := models.DepartmentPermission{
		OrganizationID: orgID,
		DepartmentID:   departmentID,
		PermissionKey:  key,
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := s.perms.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateGrant
		}
		return err
	}
	return nil
}

// RevokePermission removes a permission key from a department.
func (s *Store) RevokePermission(ctx context.Context, departmentID primitive.ObjectID, key models.OrgPermissionKey) error {
	res, err := s.perms.DeleteOne(ctx, bson.M{"department_id": departmentID, "permission_key": key})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PermissionsForDepartments returns the union of permission grants
// across the given departments, deduplicated, in enumeration order.
// This is the containment query at the heart of the department model:
// a member of several departments holds the superset of their grants.
func (s *Store) PermissionsForDepartments(ctx context.Context, departmentIDs []primitive.ObjectID) ([]models.OrgPermissionKey, error) {
	if len(departmentIDs) == 0 {
		return nil, nil
	}
	cur, err := s.perms.Find(ctx, bson.M{"department_id": bson.M{"$in": departmentIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var grants []models.DepartmentPermission
	if err := cur.All(ctx, &grants); err != nil {
		return nil, err
	}

	seen := make(map[models.OrgPermissionKey]struct{}, len(grants))
	for _, g := range grants {
		seen[g.PermissionKey] = struct{}{}
	}
	var keys []models.OrgPermissionKey
	for _, k := range models.AllOrgPermissions {
		if _, ok := seen[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// AssignMember puts an organization membership into a department.
func (s *Store) AssignMember(ctx context.Context, orgID, membershipID, departmentID primitive.ObjectID) error {
	doc := models.OrgMemberDepartment{
		OrganizationID: orgID,
		MembershipID:   membershipID,
		DepartmentID:   departmentID,
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := s.assignments.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateAssignment
		}
		return err
	}
	return nil
}

// UnassignMember removes a membership from a department.
func (s *Store) UnassignMember(ctx context.Context, membershipID, departmentID primitive.ObjectID) error {
	res, err := s.assignments.DeleteOne(ctx, bson.M{
		"membership_id": membershipID,
		"department_id": departmentID,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DepartmentIDsForMember returns the departments an organization
// membership is assigned to. An empty result is meaningful: for
// non-owners it resolves to zero permissions.
func (s *Store) DepartmentIDsForMember(ctx context.Context, membershipID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.assignments.Find(ctx, bson.M{"membership_id": membershipID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.OrgMemberDepartment
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.DepartmentID)
	}
	return ids, nil
}
