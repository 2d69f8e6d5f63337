// internal/app/store/workspacememberships/workspacemembershipstore.go
package workspacemembershipstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	ErrNotFound            = errors.New("workspace membership not found")
	ErrDuplicateMembership = errors.New("user is already a member of this workspace")
	ErrBadRole             = errors.New(`role must be "owner", "admin", or "member"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("workspace_memberships")}
}

// Add creates an active membership.
func (s *Store) Add(ctx context.Context, workspaceID, userID primitive.ObjectID, role string) (models.WorkspaceMembership, error) {
	switch role {
	case models.WorkspaceRoleOwner, models.WorkspaceRoleAdmin, models.WorkspaceRoleMember:
	default:
		return models.WorkspaceMembership{}, ErrBadRole
	}
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
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.WorkspaceMembership{}, ErrDuplicateMembership
		}
		return models.WorkspaceMembership{}, err
	}
	return m, nil
}

// GetActive returns the membership for (workspaceID, userID), treating
// soft-deleted documents as absent.
func (s *Store) GetActive(ctx context.Context, workspaceID, userID primitive.ObjectID) (models.WorkspaceMembership, error) {
	var m models.WorkspaceMembership
	err := s.c.FindOne(ctx, bson.M{
		"workspace_id": workspaceID,
		"user_id":      userID,
		"status":       bson.M{"$ne": status.Deleted},
	}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.WorkspaceMembership{}, ErrNotFound
	}
	if err != nil {
		return models.WorkspaceMembership{}, err
	}
	return m, nil
}

// SoftDelete flips the membership to deleted status. The document stays
// for audit; access resolution no longer sees it.
func (s *Store) SoftDelete(ctx context.Context, workspaceID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"workspace_id": workspaceID, "user_id": userID, "status": bson.M{"$ne": status.Deleted}},
		bson.M{"$set": bson.M{"status": status.Deleted, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActiveByUser returns the user's non-deleted workspace memberships.
func (s *Store) ListActiveByUser(ctx context.Context, userID primitive.ObjectID) ([]models.WorkspaceMembership, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"user_id": userID,
		"status":  bson.M{"$ne": status.Deleted},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var ms []models.WorkspaceMembership
	if err := cur.All(ctx, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}
