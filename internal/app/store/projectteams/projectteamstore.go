// internal/app/store/projectteams/projectteamstore.go
package projectteamstore

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

// Store covers project teams and their member assignments.
type Store struct {
	teams   *mongo.Collection
	members *mongo.Collection
}

var (
	ErrNotFound        = errors.New("project team not found")
	ErrDuplicateTeam   = errors.New("a team with this name already exists in the project")
	ErrDuplicateMember = errors.New("user is already on this team")
)

func New(db *mongo.Database) *Store {
	return &Store{
		teams:   db.Collection("project_teams"),
		members: db.Collection("project_team_members"),
	}
}

func (s *Store) Create(ctx context.Context, projectID primitive.ObjectID, name string) (models.ProjectTeam, error) {
	t := models.ProjectTeam{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		Name:      htmlsanitize.Strip(name),
		CreatedAt: time.Now().UTC(),
	}
	t.NameCI = text.Fold(t.Name)
	if _, err := s.teams.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.ProjectTeam{}, ErrDuplicateTeam
		}
		return models.ProjectTeam{}, err
	}
	return t, nil
}

// AddMember puts a user on a team. The team's project ID is denormalized
// onto the member document so team lookups stay project-scoped.
func (s *Store) AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	var t models.ProjectTeam
	if err := s.teams.FindOne(ctx, bson.M{"_id": teamID}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}
	doc := models.ProjectTeamMember{
		ProjectID: t.ProjectID,
		TeamID:    teamID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.members.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateMember
		}
		return err
	}
	return nil
}

// RemoveMember takes a user off a team.
func (s *Store) RemoveMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	res, err := s.members.DeleteOne(ctx, bson.M{"team_id": teamID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// TeamIDsForUser returns the teams the user belongs to within one
// project. The project filter is load-bearing: a team in another
// project must never surface here, whatever its name or ID pattern.
func (s *Store) TeamIDsForUser(ctx context.Context, projectID, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.members.Find(ctx, bson.M{"project_id": projectID, "user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.ProjectTeamMember
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.TeamID)
	}
	return ids, nil
}
