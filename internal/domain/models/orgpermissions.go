// internal/domain/models/orgpermissions.go
package models

// OrgPermissionKey is a fine-grained organization capability. The set of
// valid keys is closed: grants are validated against AllOrgPermissions
// before they are written.
type OrgPermissionKey string

const (
	OrgPermBillingView        OrgPermissionKey = "billing-view"
	OrgPermBillingManage      OrgPermissionKey = "billing-manage"
	OrgPermMembersView        OrgPermissionKey = "members-view"
	OrgPermMembersManage      OrgPermissionKey = "members-manage"
	OrgPermDepartmentsManage  OrgPermissionKey = "departments-manage"
	OrgPermWorkspaceCreate    OrgPermissionKey = "workspace-create"
	OrgPermWorkspaceManage    OrgPermissionKey = "workspace-manage"
	OrgPermSettingsManage     OrgPermissionKey = "settings-manage"
	OrgPermAuditView          OrgPermissionKey = "audit-view"
	OrgPermReportsView        OrgPermissionKey = "reports-view"
	OrgPermIntegrationsManage OrgPermissionKey = "integrations-manage"
	OrgPermUsageView          OrgPermissionKey = "usage-view"
)

// AllOrgPermissions is the full enumeration, in stable order. Owners
// receive exactly this set.
var AllOrgPermissions = []OrgPermissionKey{
	OrgPermBillingView,
	OrgPermBillingManage,
	OrgPermMembersView,
	OrgPermMembersManage,
	OrgPermDepartmentsManage,
	OrgPermWorkspaceCreate,
	OrgPermWorkspaceManage,
	OrgPermSettingsManage,
	OrgPermAuditView,
	OrgPermReportsView,
	OrgPermIntegrationsManage,
	OrgPermUsageView,
}

// IsValidOrgPermission reports whether key is in the closed enumeration.
func IsValidOrgPermission(key OrgPermissionKey) bool {
	for _, k := range AllOrgPermissions {
		if k == key {
			return true
		}
	}
	return false
}

// OrgRoleDefaultPermissions is the legacy role-default table. It is only
// consulted by the explicit-grant model (orggrants): when a member has no
// explicit grant records, their role's defaults apply. The department
// model never reads this table.
var OrgRoleDefaultPermissions = map[string][]OrgPermissionKey{
	OrgRoleOwner: AllOrgPermissions,
	OrgRoleAdmin: {
		OrgPermBillingView,
		OrgPermMembersView,
		OrgPermMembersManage,
		OrgPermDepartmentsManage,
		OrgPermWorkspaceCreate,
		OrgPermWorkspaceManage,
		OrgPermSettingsManage,
		OrgPermAuditView,
		OrgPermReportsView,
		OrgPermIntegrationsManage,
		OrgPermUsageView,
	},
	OrgRoleModerator: {
		OrgPermMembersView,
		OrgPermAuditView,
		OrgPermReportsView,
		OrgPermUsageView,
	},
	OrgRoleMember: {
		OrgPermMembersView,
	},
}
