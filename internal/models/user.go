package models

// User defines the structure for application accounts.
type User struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Username   string `json:"username" gorm:"uniqueIndex"`
	Password   string `json:"-"` // bcrypt hash, never serialized
	RoleID     uint   `json:"role_id" gorm:"index"`
	IsActive   bool   `json:"is_active" gorm:"default:true"`
	CreateTime string `json:"create_time"`
	UpdateTime string `json:"update_time"`

	Role Role `json:"-" gorm:"foreignKey:RoleID"`
}
