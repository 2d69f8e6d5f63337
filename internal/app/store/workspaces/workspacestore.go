// internal/app/store/workspaces/workspacestore.go
package workspacestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/scopehq/scopehub/internal/app/system/htmlsanitize"
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
	ErrNotFound                = errors.New("workspace not found")
	ErrPersonalWorkspaceExists = errors.New("user already has a personal workspace")
	ErrBadKind                 = errors.New(`kind must be "personal" or "org"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("workspaces")}
}

// Create inserts a workspace. Personal workspaces are limited to one
// per user; org workspaces are created freely under their organization.
func (s *Store) Create(ctx context.Context, ws models.Workspace) (models.Workspace, error) {
	switch ws.Kind {
	case models.WorkspaceKindPersonal:
		if ws.OrganizationID != nil {
			return models.Workspace{}, ErrBadKind
		}
		n, err := s.c.CountDocuments(ctx, bson.M{
			"kind":     models.WorkspaceKindPersonal,
			"owner_id": ws.OwnerID,
			"status":   status.Active,
		})
		if err != nil {
			return models.Workspace{}, err
		}
		if n > 0 {
			return models.Workspace{}, ErrPersonalWorkspaceExists
		}
	case models.WorkspaceKindOrg:
		if ws.OrganizationID == nil {
			return models.Workspace{}, ErrBadKind
		}
	default:
		return models.Workspace{}, ErrBadKind
	}

	now := time.Now().UTC()
	ws.ID = primitive.NewObjectID()
	ws.Name = htmlsanitize.Strip(ws.Name)
	ws.NameCI = text.Fold(ws.Name)
	if ws.Status == "" {
		ws.Status = status.Active
	}
	ws.CreatedAt = now
	ws.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, ws); err != nil {
		return models.Workspace{}, err
	}
	return ws, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Workspace, error) {
	var ws models.Workspace
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ws)
	if err == mongo.ErrNoDocuments {
		return models.Workspace{}, ErrNotFound
	}
	if err != nil {
		return models.Workspace{}, err
	}
	return ws, nil
}

// ListByOrg returns an organization's workspaces.
func (s *Store) ListByOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.Workspace, error) {
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var wss []models.Workspace
	if err := cur.All(ctx, &wss); err != nil {
		return nil, err
	}
	return wss, nil
}
