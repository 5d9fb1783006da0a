package auth

import "medrecords-backend/internal/models"

// Action is a named permission class checked before repository mutations.
type Action string

const (
	ActionView   Action = "view"
	ActionModify Action = "modification"
	ActionAdmin  Action = "admin"
)

// rolePermissions maps each role name to its permitted action set.
// Admin is granted the full set here rather than special-cased at check sites.
var rolePermissions = map[string]map[Action]bool{
	models.RoleViewer: {
		ActionView: true,
	},
	models.RoleModification: {
		ActionView:   true,
		ActionModify: true,
	},
	models.RoleAdmin: {
		ActionView:   true,
		ActionModify: true,
		ActionAdmin:  true,
	},
}

// Allowed reports whether the identity may perform the action.
// Anonymous identities are always denied.
func Allowed(identity *Identity, action Action) bool {
	if identity == nil {
		return false
	}
	perms, ok := rolePermissions[identity.RoleName]
	if !ok {
		return false
	}
	return perms[action]
}
