// internal/app/store/orgmemberships/orgmembershipstore.go
package orgmembershipstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"github.com/scopehq/scopehub/internal/app/system/status"
	"github.com/scopehq/scopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound            = errors.New("organization membership not found")
	ErrDuplicateMembership = errors.New("user is already a member of this organization")
	ErrBadRole             = errors.New(`role must be "owner", "admin", "moderator", or "member"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organization_memberships")}
}

// Create inserts a membership on invite acceptance. One membership per
// (org, user); duplicates are rejected by the unique index.
func (s *Store) Create(ctx context.Context, orgID, userID primitive.ObjectID, role string) (models.OrganizationMembership, error) {
	if !models.IsValidOrgRole(role) {
		return models.OrganizationMembership{}, ErrBadRole
	}
	now := time.Now().UTC()
	m := models.OrganizationMembership{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
		Status:         status.Active,
		InviteToken:    uuid.NewString(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.OrganizationMembership{}, ErrDuplicateMembership
		}
		return models.OrganizationMembership{}, err
	}
	return m, nil
}

// GetActive returns the active membership for (orgID, userID).
// Inactive memberships are invisible here but remain in the collection.
func (s *Store) GetActive(ctx context.Context, orgID, userID primitive.ObjectID) (models.OrganizationMembership, error) {
	var m models.OrganizationMembership
	err := s.c.FindOne(ctx, bson.M{
		"organization_id": orgID,
		"user_id":         userID,
		"status":          status.Active,
	}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.OrganizationMembership{}, ErrNotFound
	}
	if err != nil {
		return models.OrganizationMembership{}, err
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.OrganizationMembership, error) {
	var m models.OrganizationMembership
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.OrganizationMembership{}, ErrNotFound
	}
	if err != nil {
		return models.OrganizationMembership{}, err
	}
	return m, nil
}

// SetStatus flips a membership's status. Memberships are never deleted;
// deactivation is the removal path.
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

// SetRole changes a membership's role.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	if !models.IsValidOrgRole(role) {
		return ErrBadRole
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"role":       role,
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

// ListActiveByOrg returns the active memberships of an organization.
func (s *Store) ListActiveByOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.OrganizationMembership, error) {
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID, "status": status.Active})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var ms []models.OrganizationMembership
	if err := cur.All(ctx, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}
