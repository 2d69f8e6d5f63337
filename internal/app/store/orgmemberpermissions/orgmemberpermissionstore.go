// internal/app/store/orgmemberpermissions/orgmemberpermissionstore.go
package orgmemberpermissionstore

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

// Store holds the legacy explicit-grant records. Unlike memberships,
// grants are hard-deleted on revoke; the audit trail lives with the
// granting action, not the record.
type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateGrant = errors.New("permission is already granted to this member")
	ErrGrantNotFound  = errors.New("permission grant not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("org_member_permissions")}
}

// Insert writes one grant record. A second grant of the same key to the
// same membership is rejected by the unique index.
func (s *Store) Insert(ctx context.Context, orgID, membershipID, grantedBy primitive.ObjectID, key models.OrgPermissionKey) (models.OrgMemberPermission, error) {
	p := models.OrgMemberPermission{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		MembershipID:   membershipID,
		PermissionKey:  key,
		GrantedBy:      grantedBy,
		GrantedAt:      time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.OrgMemberPermission{}, ErrDuplicateGrant
		}
		return models.OrgMemberPermission{}, err
	}
	return p, nil
}

// Delete removes the grant for (membershipID, key). A missing record is
// an error, not a no-op: the caller asked to revoke something that was
// never granted and should hear about it.
func (s *Store) Delete(ctx context.Context, membershipID primitive.ObjectID, key models.OrgPermissionKey) error {
	res, err := s.c.DeleteOne(ctx, bson.M{
		"membership_id":  membershipID,
		"permission_key": key,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrGrantNotFound
	}
	return nil
}

// ListByMember returns all grant records for a membership.
func (s *Store) ListByMember(ctx context.Context, membershipID primitive.ObjectID) ([]models.OrgMemberPermission, error) {
	cur, err := s.c.Find(ctx, bson.M{"membership_id": membershipID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var grants []models.OrgMemberPermission
	if err := cur.All(ctx, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

// KeysByMember returns just the granted permission keys for a membership.
func (s *Store) KeysByMember(ctx context.Context, membershipID primitive.ObjectID) ([]models.OrgPermissionKey, error) {
	grants, err := s.ListByMember(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	keys := make([]models.OrgPermissionKey, 0, len(grants))
	for _, g := range grants {
		keys = append(keys, g.PermissionKey)
	}
	return keys, nil
}

// Exists reports whether the (membershipID, key) grant exists.
func (s *Store) Exists(ctx context.Context, membershipID primitive.ObjectID, key models.OrgPermissionKey) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"membership_id":  membershipID,
		"permission_key": key,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountByMemberKey returns the number of grant records for one
// (membership, key) pair. Used by tests to assert the no-duplicate
// invariant at the collection level.
func (s *Store) CountByMemberKey(ctx context.Context, membershipID primitive.ObjectID, key models.OrgPermissionKey) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"membership_id":  membershipID,
		"permission_key": key,
	})
}
