// internal/app/features/accessapi/resolve.go
package accessapi

import (
	"context"
	"net/http"

	"github.com/scopehq/scopehub/internal/app/system/authz"
	"github.com/scopehq/scopehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeOrgAccess handles GET /orgs/{orgID}. An optional ?workspace=
// query parameter adds workspace context so workspace-scoped route
// paths are included in the result.
func (h *Handler) ServeOrgAccess(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if wsHex := r.URL.Query().Get("workspace"); wsHex != "" {
		wsID, err := primitive.ObjectIDFromHex(wsHex)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid workspace")
			return
		}
		writeJSON(w, http.StatusOK, h.orgs.ResolveWithWorkspace(ctx, userID, orgID, wsID))
		return
	}
	writeJSON(w, http.StatusOK, h.orgs.Resolve(ctx, userID, orgID))
}

// ServeWorkspaceAccess handles GET /workspaces/{workspaceID}.
func (h *Handler) ServeWorkspaceAccess(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	wsID, ok := pathID(w, r, "workspaceID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	writeJSON(w, http.StatusOK, h.workspaces.Resolve(ctx, userID, wsID))
}

// ServeProjectAccess handles GET /projects/{projectID}.
func (h *Handler) ServeProjectAccess(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	writeJSON(w, http.StatusOK, h.projects.Resolve(ctx, userID, projectID))
}
