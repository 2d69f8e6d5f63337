// internal/app/features/accessapi/handler.go

// Package accessapi exposes the access resolvers and the legacy grant
// service over JSON. Resolution endpoints answer for the signed-in
// user only; there is no "resolve as someone else" surface.
package accessapi

import (
	"github.com/scopehq/scopehub/internal/app/policy/orgaccess"
	"github.com/scopehq/scopehub/internal/app/policy/orggrants"
	"github.com/scopehq/scopehub/internal/app/policy/projectaccess"
	"github.com/scopehq/scopehub/internal/app/policy/workspaceaccess"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the access API.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger

	orgs       *orgaccess.Resolver
	workspaces *workspaceaccess.Resolver
	projects   *projectaccess.Resolver
	grants     *orggrants.Service
}

// NewHandler constructs an access API handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		orgs:       orgaccess.New(db, logger),
		workspaces: workspaceaccess.New(db, logger),
		projects:   projectaccess.New(db, logger),
		grants:     orggrants.New(db, logger),
	}
}
