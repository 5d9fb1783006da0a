package models

// Role defines the structure for user roles.
type Role struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	RoleName string `json:"role_name" gorm:"unique"`
	RoleDesc string `json:"role_desc"`
}

// Role names seeded at startup. "admin" satisfies every role check.
const (
	RoleViewer       = "viewer"
	RoleModification = "modification"
	RoleAdmin        = "admin"
)
