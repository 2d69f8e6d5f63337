// internal/domain/models/access.go
package models

// MembershipKind distinguishes access derived from a persisted
// membership document from access fabricated by an override rule
// (org owner, workspace admin). Synthetic memberships are request-scoped
// values; they are never written to the store, and callers must not
// treat them as durable state.
type MembershipKind string

const (
	MembershipDirect    MembershipKind = "direct"
	MembershipSynthetic MembershipKind = "synthetic-override"
)

// ResolvedMembership is the membership slot on a resolver result.
type ResolvedMembership struct {
	Kind MembershipKind `json:"kind"`
	Role string         `json:"role"`
}

// PermissionSource tags which of the two organization permission
// mechanisms produced a permission set. The department model and the
// legacy explicit-grant model coexist and are deliberately not merged;
// their invariants differ (no department means zero permissions, while
// the legacy model always falls back to role defaults).
type PermissionSource string

const (
	SourceDepartments    PermissionSource = "departments"
	SourceExplicitGrants PermissionSource = "explicit-grants"
	SourceRoleDefaults   PermissionSource = "role-defaults"
)
