// internal/domain/models/projectpermissions.go
package models

// ProjectPermissionKey is a fine-grained project capability. Like the
// organization keys, the enumeration is closed.
type ProjectPermissionKey string

const (
	ProjectPermTaskView         ProjectPermissionKey = "task-view"
	ProjectPermTaskCreate       ProjectPermissionKey = "task-create"
	ProjectPermTaskEdit         ProjectPermissionKey = "task-edit"
	ProjectPermTaskDelete       ProjectPermissionKey = "task-delete"
	ProjectPermMemberInvite     ProjectPermissionKey = "member-invite"
	ProjectPermMemberRemove     ProjectPermissionKey = "member-remove"
	ProjectPermTeamManage       ProjectPermissionKey = "team-manage"
	ProjectPermSettingsEdit     ProjectPermissionKey = "settings-edit"
	ProjectPermProjectDelete    ProjectPermissionKey = "project-delete"
	ProjectPermCommentCreate    ProjectPermissionKey = "comment-create"
	ProjectPermAttachmentUpload ProjectPermissionKey = "attachment-upload"
	ProjectPermTimelineView     ProjectPermissionKey = "timeline-view"
)

// AllProjectPermissions is the full enumeration, in stable order.
// Synthetic owner access (org/workspace overrides) receives exactly
// this set.
var AllProjectPermissions = []ProjectPermissionKey{
	ProjectPermTaskView,
	ProjectPermTaskCreate,
	ProjectPermTaskEdit,
	ProjectPermTaskDelete,
	ProjectPermMemberInvite,
	ProjectPermMemberRemove,
	ProjectPermTeamManage,
	ProjectPermSettingsEdit,
	ProjectPermProjectDelete,
	ProjectPermCommentCreate,
	ProjectPermAttachmentUpload,
	ProjectPermTimelineView,
}

// IsValidProjectPermission reports whether key is in the closed enumeration.
func IsValidProjectPermission(key ProjectPermissionKey) bool {
	for _, k := range AllProjectPermissions {
		if k == key {
			return true
		}
	}
	return false
}

// ProjectRolePermissions is the static role-default table. Team and
// direct grants are unioned on top of these during resolution.
var ProjectRolePermissions = map[string][]ProjectPermissionKey{
	ProjectRoleOwner: AllProjectPermissions,
	ProjectRoleAdmin: {
		ProjectPermTaskView,
		ProjectPermTaskCreate,
		ProjectPermTaskEdit,
		ProjectPermTaskDelete,
		ProjectPermMemberInvite,
		ProjectPermMemberRemove,
		ProjectPermTeamManage,
		ProjectPermSettingsEdit,
		ProjectPermCommentCreate,
		ProjectPermAttachmentUpload,
		ProjectPermTimelineView,
	},
	ProjectRoleMember: {
		ProjectPermTaskView,
		ProjectPermTaskCreate,
		ProjectPermTaskEdit,
		ProjectPermCommentCreate,
		ProjectPermAttachmentUpload,
		ProjectPermTimelineView,
	},
	ProjectRoleViewer: {
		ProjectPermTaskView,
		ProjectPermTimelineView,
	},
}
