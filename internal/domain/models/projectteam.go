// internal/domain/models/projectteam.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectTeam groups users within one project. Teams never cross
// projects: a grant to a team applies only inside the team's project.
type ProjectTeam struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"project_id"`
	Name      string             `bson:"name" json:"name"`
	NameCI    string             `bson:"name_ci" json:"name_ci"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ProjectTeamMember joins a user to a project team.
type ProjectTeamMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"project_id"`
	TeamID    primitive.ObjectID `bson:"team_id" json:"team_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Project permission grant subjects.
const (
	PermissionSubjectTeam = "team"
	PermissionSubjectUser = "user"
)

// ProjectPermission is a direct grant of one project permission key to
// either a team or an individual user, scoped to one project.
type ProjectPermission struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ProjectID     primitive.ObjectID   `bson:"project_id" json:"project_id"`
	SubjectKind   string               `bson:"subject_kind" json:"subject_kind"` // team | user
	SubjectID     primitive.ObjectID   `bson:"subject_id" json:"subject_id"`
	PermissionKey ProjectPermissionKey `bson:"permission_key" json:"permission_key"`
	GrantedBy     primitive.ObjectID   `bson:"granted_by" json:"granted_by"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
}
