// internal/app/system/status/status.go

// Package status defines the status scalars shared by the stores.
// Lifecycle rule: memberships are deactivated or soft-deleted by
// flipping status, never hard-deleted, so past access resolutions
// remain reconstructable for audit.
package status

const (
	Active   = "active"
	Inactive = "inactive"
	Deleted  = "deleted"
	Removed  = "removed"
	Disabled = "disabled"
)

// IsValid reports whether s is a known status value.
func IsValid(s string) bool {
	switch s {
	case Active, Inactive, Deleted, Removed, Disabled:
		return true
	}
	return false
}
