// internal/app/policy/orggrants/orggrants.go

// Package orggrants manages per-member organization permission grants.
// This is the explicit-grant model: individual permission keys attached
// to a membership, with role defaults as the fallback when a member has
// no explicit grants at all. It is independent from the department
// model in orgaccess and the two sets are never merged.
//
// Only the organization owner may grant or revoke, and owners are never
// valid grant targets; their access never depends on grant rows.
package orggrants

import (
	"context"
	"errors"

	orgmembershipstore "github.com/scopehq/scopehub/internal/app/store/orgmemberships"
	grantstore "github.com/scopehq/scopehub/internal/app/store/orgmemberpermissions"
	"github.com/scopehq/scopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrNotOwner          = errors.New("orggrants: acting user is not the organization owner")
	ErrNotMember         = errors.New("orggrants: acting user is not a member of this organization")
	ErrTargetIsOwner     = errors.New("orggrants: cannot grant permissions to an owner")
	ErrMemberNotInOrg    = errors.New("orggrants: membership does not belong to this organization")
	ErrInvalidPermission = errors.New("orggrants: unknown permission key")

	// Re-exported store sentinels so callers need only this package.
	ErrDuplicateGrant = grantstore.ErrDuplicateGrant
	ErrGrantNotFound  = grantstore.ErrGrantNotFound
)

type Service struct {
	memberships *orgmembershipstore.Store
	grants      *grantstore.Store
	log         *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.L()
	}
	return &Service{
		memberships: orgmembershipstore.New(db),
		grants:      grantstore.New(db),
		log:         logger,
	}
}

// BulkResult reports the outcome of a bulk grant. Bulk operations are
// not atomic: keys already granted are counted as skipped and the rest
// are still written.
type BulkResult struct {
	Granted int `json:"granted"`
	Skipped int `json:"skipped"`
}

// authorize checks that actorID is the active owner of orgID and that
// membershipID names an active, non-owner member of the same org. It
// returns the target membership.
func (s *Service) authorize(ctx context.Context, orgID, actorID, membershipID primitive.ObjectID) (models.OrganizationMembership, error) {
	actor, err := s.memberships.GetActive(ctx, orgID, actorID)
	if err == orgmembershipstore.ErrNotFound {
		return models.OrganizationMembership{}, ErrNotOwner
	}
	if err != nil {
		return models.OrganizationMembership{}, err
	}
	if actor.Role != models.OrgRoleOwner {
		return models.OrganizationMembership{}, ErrNotOwner
	}

	target, err := s.memberships.GetByID(ctx, membershipID)
	if err == orgmembershipstore.ErrNotFound {
		return models.OrganizationMembership{}, ErrMemberNotInOrg
	}
	if err != nil {
		return models.OrganizationMembership{}, err
	}
	if target.OrganizationID != orgID {
		return models.OrganizationMembership{}, ErrMemberNotInOrg
	}
	if target.Role == models.OrgRoleOwner {
		return models.OrganizationMembership{}, ErrTargetIsOwner
	}
	return target, nil
}

// Grant adds one permission key to a membership. Granting a key the
// member already holds fails with ErrDuplicateGrant.
func (s *Service) Grant(ctx context.Context, orgID, actorID, membershipID primitive.ObjectID, key models.OrgPermissionKey) (models.OrgMemberPermission, error) {
	if !models.IsValidOrgPermission(key) {
		return models.OrgMemberPermission{}, ErrInvalidPermission
	}
	if _, err := s.authorize(ctx, orgID, actorID, membershipID); err != nil {
		return models.OrgMemberPermission{}, err
	}
	grant, err := s.grants.Insert(ctx, orgID, membershipID, actorID, key)
	if err != nil {
		return models.OrgMemberPermission{}, err
	}
	s.log.Info("org permission granted",
		zap.String("org_id", orgID.Hex()),
		zap.String("membership_id", membershipID.Hex()),
		zap.String("key", string(key)))
	return grant, nil
}

// Revoke removes one permission key from a membership. Revoking a key
// the member does not hold fails with ErrGrantNotFound; a second revoke
// of the same key is therefore an error, not a no-op.
func (s *Service) Revoke(ctx context.Context, orgID, actorID, membershipID primitive.ObjectID, key models.OrgPermissionKey) error {
	if !models.IsValidOrgPermission(key) {
		return ErrInvalidPermission
	}
	if _, err := s.authorize(ctx, orgID, actorID, membershipID); err != nil {
		return err
	}
	if err := s.grants.Delete(ctx, membershipID, key); err != nil {
		return err
	}
	s.log.Info("org permission revoked",
		zap.String("org_id", orgID.Hex()),
		zap.String("membership_id", membershipID.Hex()),
		zap.String("key", string(key)))
	return nil
}

// BulkGrant grants every key in keys, skipping duplicates. Invalid keys
// fail the whole call before any write; any other insert error aborts
// mid-bulk, leaving earlier grants in place.
func (s *Service) BulkGrant(ctx context.Context, orgID, actorID, membershipID primitive.ObjectID, keys []models.OrgPermissionKey) (BulkResult, error) {
	for _, key := range keys {
		if !models.IsValidOrgPermission(key) {
			return BulkResult{}, ErrInvalidPermission
		}
	}
	if _, err := s.authorize(ctx, orgID, actorID, membershipID); err != nil {
		return BulkResult{}, err
	}

	var res BulkResult
	for _, key := range keys {
		_, err := s.grants.Insert(ctx, orgID, membershipID, actorID, key)
		switch err {
		case nil:
			res.Granted++
		case grantstore.ErrDuplicateGrant:
			res.Skipped++
		default:
			return res, err
		}
	}
	s.log.Info("org permissions bulk granted",
		zap.String("org_id", orgID.Hex()),
		zap.String("membership_id", membershipID.Hex()),
		zap.Int("granted", res.Granted),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

// EffectivePermissions resolves the permission set for a membership
// under the explicit-grant model. Owners always hold the full
// enumeration. Otherwise explicit grants win when any exist; a member
// with none falls back to the defaults for their role. The returned
// Source tag records which branch produced the set.
func (s *Service) EffectivePermissions(ctx context.Context, membershipID primitive.ObjectID) ([]models.OrgPermissionKey, models.PermissionSource, error) {
	m, err := s.memberships.GetByID(ctx, membershipID)
	if err != nil {
		return nil, "", err
	}
	return s.effective(ctx, m)
}

// EffectivePermissionsInOrg is the org-scoped read used by API callers.
// The actor must be an active member of orgID, and the target membership
// must belong to that same organization; a membership from another org
// reads as not found so IDs cannot be probed across tenants.
func (s *Service) EffectivePermissionsInOrg(ctx context.Context, orgID, actorID, membershipID primitive.ObjectID) ([]models.OrgPermissionKey, models.PermissionSource, error) {
	if _, err := s.memberships.GetActive(ctx, orgID, actorID); err != nil {
		if err == orgmembershipstore.ErrNotFound {
			return nil, "", ErrNotMember
		}
		return nil, "", err
	}

	m, err := s.memberships.GetByID(ctx, membershipID)
	if err == orgmembershipstore.ErrNotFound {
		return nil, "", ErrMemberNotInOrg
	}
	if err != nil {
		return nil, "", err
	}
	if m.OrganizationID != orgID {
		return nil, "", ErrMemberNotInOrg
	}
	return s.effective(ctx, m)
}

func (s *Service) effective(ctx context.Context, m models.OrganizationMembership) ([]models.OrgPermissionKey, models.PermissionSource, error) {
	if m.Role == models.OrgRoleOwner {
		return models.AllOrgPermissions, models.SourceRoleDefaults, nil
	}

	granted, err := s.grants.KeysByMember(ctx, m.ID)
	if err != nil {
		return nil, "", err
	}
	if len(granted) > 0 {
		return dedup(granted), models.SourceExplicitGrants, nil
	}
	return dedup(models.OrgRoleDefaultPermissions[m.Role]), models.SourceRoleDefaults, nil
}

// dedup returns keys filtered to the known enumeration, in enumeration
// order, without duplicates.
func dedup(keys []models.OrgPermissionKey) []models.OrgPermissionKey {
	seen := make(map[models.OrgPermissionKey]struct{}, len(keys))
	for _, k := range keys {
		seen[k] = struct{}{}
	}
	var out []models.OrgPermissionKey
	for _, k := range models.AllOrgPermissions {
		if _, ok := seen[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
