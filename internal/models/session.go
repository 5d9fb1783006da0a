package models

import "time"

// Session stores user login sessions, keyed by the cookie token.
type Session struct {
	Token     string    `json:"-" gorm:"primaryKey;size:64"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}
