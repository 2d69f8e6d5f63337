// internal/app/features/accessapi/grants.go
package accessapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/scopehq/scopehub/internal/app/policy/orggrants"
	orgmembershipstore "github.com/scopehq/scopehub/internal/app/store/orgmemberships"
	"github.com/scopehq/scopehub/internal/app/system/authz"
	"github.com/scopehq/scopehub/internal/app/system/timeouts"
	"github.com/scopehq/scopehub/internal/domain/models"
)

type grantRequest struct {
	Key models.OrgPermissionKey `json:"key"`
}

type bulkGrantRequest struct {
	Keys []models.OrgPermissionKey `json:"keys"`
}

// grantStatus maps service errors onto HTTP status codes. Unknown
// errors are 500s; everything the service rejects deliberately gets a
// 4xx the client can act on.
func grantStatus(err error) int {
	switch {
	case errors.Is(err, orggrants.ErrNotOwner),
		errors.Is(err, orggrants.ErrNotMember):
		return http.StatusForbidden
	case errors.Is(err, orggrants.ErrTargetIsOwner),
		errors.Is(err, orggrants.ErrInvalidPermission):
		return http.StatusUnprocessableEntity
	case errors.Is(err, orggrants.ErrMemberNotInOrg),
		errors.Is(err, orggrants.ErrGrantNotFound),
		errors.Is(err, orgmembershipstore.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, orggrants.ErrDuplicateGrant):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// HandleGrant handles POST /orgs/{orgID}/members/{membershipID}/permissions.
func (h *Handler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	_, actorID, ok := authz.UserCtx(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}
	membershipID, ok := pathID(w, r, "membershipID")
	if !ok {
		return
	}

	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	grant, err := h.grants.Grant(ctx, orgID, actorID, membershipID, req.Key)
	if err != nil {
		writeError(w, grantStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, grant)
}

// HandleBulkGrant handles POST /orgs/{orgID}/members/{membershipID}/permissions/bulk.
func (h *Handler) HandleBulkGrant(w http.ResponseWriter, r *http.Request) {
	_, actorID, ok := authz.UserCtx(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}
	membershipID, ok := pathID(w, r, "membershipID")
	if !ok {
		return
	}

	var req bulkGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Keys) == 0 {
		writeError(w, http.StatusBadRequest, "keys must not be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	res, err := h.grants.BulkGrant(ctx, orgID, actorID, membershipID, req.Keys)
	if err != nil {
		writeError(w, grantStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleRevoke handles DELETE /orgs/{orgID}/members/{membershipID}/permissions/{key}.
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	_, actorID, ok := authz.UserCtx(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}
	membershipID, ok := pathID(w, r, "membershipID")
	if !ok {
		return
	}
	key := models.OrgPermissionKey(chi.URLParam(r, "key"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.grants.Revoke(ctx, orgID, actorID, membershipID, key); err != nil {
		writeError(w, grantStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeEffectivePermissions handles
// GET /orgs/{orgID}/members/{membershipID}/permissions. The caller must
// be an active member of the org; memberships outside it read as not
// found.
func (h *Handler) ServeEffectivePermissions(w http.ResponseWriter, r *http.Request) {
	_, actorID, ok := authz.UserCtx(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}
	membershipID, ok := pathID(w, r, "membershipID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	perms, source, err := h.grants.EffectivePermissionsInOrg(ctx, orgID, actorID, membershipID)
	if err != nil {
		writeError(w, grantStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Permissions []models.OrgPermissionKey `json:"permissions"`
		Source      models.PermissionSource   `json:"source"`
	}{Permissions: perms, Source: source})
}
