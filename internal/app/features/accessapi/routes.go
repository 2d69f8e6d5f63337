// internal/app/features/accessapi/routes.go
package accessapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/scopehq/scopehub/internal/app/system/auth"
)

// Routes mounts the access API under the base path (typically
// "/api/access" from bootstrap). Every endpoint requires a signed-in
// user; authorization beyond that is the resolvers' and the grant
// service's job.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/orgs/{orgID}", h.ServeOrgAccess)
	r.Get("/workspaces/{workspaceID}", h.ServeWorkspaceAccess)
	r.Get("/projects/{projectID}", h.ServeProjectAccess)

	r.Route("/orgs/{orgID}/members/{membershipID}/permissions", func(pr chi.Router) {
		pr.Get("/", h.ServeEffectivePermissions)
		pr.Post("/", h.HandleGrant)
		pr.Post("/bulk", h.HandleBulkGrant)
		pr.Delete("/{key}", h.HandleRevoke)
	})

	return r
}
