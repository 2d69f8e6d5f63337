// internal/app/store/projectpermissions/projectpermissionstore.go
package projectpermissionstore

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
	ErrDuplicateGrant    = errors.New("permission is already granted to this subject")
	ErrGrantNotFound     = errors.New("permission grant not found")
	ErrInvalidPermission = errors.New("unknown project permission key")
	ErrBadSubject        = errors.New(`subject kind must be "team" or "user"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("project_permissions")}
}

// Grant writes a direct permission grant to a team or user within one
// project. The key is validated against the closed enumeration first.
func (s *Store) Grant(ctx context.Context, projectID primitive.ObjectID, subjectKind string, subjectID, grantedBy primitive.ObjectID, key models.ProjectPermissionKey) error {
	if !models.IsValidProjectPermission(key) {
		return ErrInvalidPermission
	}
	if subjectKind != models.PermissionSubjectTeam && subjectKind != models.PermissionSubjectUser {
		return ErrBadSubject
	}
	doc := models.ProjectPermission{
		ProjectID:     projectID,
		SubjectKind:   subjectKind,
		SubjectID:     subjectID,
		PermissionKey: key,
		GrantedBy:     grantedBy,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateGrant
		}
		return err
	}
	return nil
}

// Revoke deletes a direct grant.
func (s *Store) Revoke(ctx context.Context, projectID primitive.ObjectID, subjectID primitive.ObjectID, key models.ProjectPermissionKey) error {
	res, err := s.c.DeleteOne(ctx, bson.M{
		"project_id":     projectID,
		"subject_id":     subjectID,
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

// KeysForTeams returns the permission keys granted to any of the given
// teams within one project.
func (s *Store) KeysForTeams(ctx context.Context, projectID primitive.ObjectID, teamIDs []primitive.ObjectID) ([]models.ProjectPermissionKey, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	return s.keys(ctx, bson.M{
		"project_id":   projectID,
		"subject_kind": models.PermissionSubjectTeam,
		"subject_id":   bson.M{"$in": teamIDs},
	})
}

// KeysForUser returns the permission keys granted directly to a user
// within one project.
func (s *Store) KeysForUser(ctx context.Context, projectID, userID primitive.ObjectID) ([]models.ProjectPermissionKey, error) {
	return s.keys(ctx, bson.M{
		"project_id":   projectID,
		"subject_kind": models.PermissionSubjectUser,
		"subject_id":   userID,
	})
}

func (s *Store) keys(ctx context.Context, filter bson.M) ([]models.ProjectPermissionKey, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var grants []models.ProjectPermission
	if err := cur.All(ctx, &grants); err != nil {
		return nil, err
	}
	keys := make([]models.ProjectPermissionKey, 0, len(grants))
	for _, g := range grants {
		keys = append(keys, g.PermissionKey)
	}
	return keys, nil
}
