// internal/app/store/projectmembers/projectmemberstore.go
package projectmemberstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/scopehq/scopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound            = errors.New("project member not found")
	ErrDuplicateMembership = errors.New("user is already a member of this project")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("project_members")}
}

// Add creates an active project membership with a canonical role.
func (s *Store) Add(ctx context.Context, projectID, userID primitive.ObjectID, role string) (models.ProjectMember, error) {
	if models.ProjectRoleFromName(role) == "" {
		return models.ProjectMember{}, errors.New("unknown project role")
	}
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
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.ProjectMember{}, ErrDuplicateMembership
		}
		return models.ProjectMember{}, err
	}
	return m, nil
}

// AddLegacy creates a membership the way older creation paths did: no
// canonical role, only a denormalized role name and optionally a custom
// role document reference. Kept so fixtures and imports can produce the
// document shapes resolution has to support.
func (s *Store) AddLegacy(ctx context.Context, projectID, userID primitive.ObjectID, roleName string, roleID *primitive.ObjectID) (models.ProjectMember, error) {
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
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.ProjectMember{}, ErrDuplicateMembership
		}
		return models.ProjectMember{}, err
	}
	return m, nil
}

// GetActive locates the caller's membership in a project. It prefers a
// document with active status; when none exists it falls back to any
// non-removed document, because memberships written before the status
// field existed carry no status at all.
func (s *Store) GetActive(ctx context.Context, projectID, userID primitive.ObjectID) (models.ProjectMember, error) {
	var m models.ProjectMember
	err := s.c.FindOne(ctx, bson.M{
		"project_id": projectID,
		"user_id":    userID,
		"status":     models.ProjectMemberActive,
	}).Decode(&m)
	if err == nil {
		return m, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.ProjectMember{}, err
	}

	// Backward compat: accept any record that is not explicitly removed.
	err = s.c.FindOne(ctx, bson.M{
		"project_id": projectID,
		"user_id":    userID,
		"status":     bson.M{"$ne": models.ProjectMemberRemoved},
	}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.ProjectMember{}, ErrNotFound
	}
	if err != nil {
		return models.ProjectMember{}, err
	}
	return m, nil
}

// SetStatus flips a membership's status (removal path: "removed").
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, st string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     st,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RoleStore holds custom role documents referenced by ProjectMember.RoleID.
type RoleStore struct {
	c *mongo.Collection
}

func NewRoleStore(db *mongo.Database) *RoleStore {
	return &RoleStore{c: db.Collection("project_roles")}
}

func (s *RoleStore) GetByID(ctx context.Context, id primitive.ObjectID) (models.ProjectRoleDoc, error) {
	var r models.ProjectRoleDoc
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return models.ProjectRoleDoc{}, ErrNotFound
	}
	if err != nil {
		return models.ProjectRoleDoc{}, err
	}
	return r, nil
}

func (s *RoleStore) Create(ctx context.Context, r models.ProjectRoleDoc) (models.ProjectRoleDoc, error) {
	r.ID = primitive.NewObjectID()
	r.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.ProjectRoleDoc{}, err
	}
	return r, nil
}
