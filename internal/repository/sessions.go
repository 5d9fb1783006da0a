package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"medrecords-backend/internal/auth"
	"medrecords-backend/internal/models"
)

// SessionRepository manages the DB-backed login sessions referenced by the
// session cookie.
type SessionRepository struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSessionRepository(db *gorm.DB, ttl time.Duration) *SessionRepository {
	return &SessionRepository{db: db, ttl: ttl}
}

// Login verifies the credentials and creates a session on success. Absent
// users, inactive users and wrong passwords all return ErrInvalidCredentials.
func (r *SessionRepository) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Role").
		Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("fetching user %q: %w", username, err)
	}
	if !user.IsActive || !auth.CheckPassword(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	session := models.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(r.ttl),
	}
	if err := r.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, "", fmt.Errorf("creating session: %w", err)
	}
	return &user, session.Token, nil
}

// Resolve maps a session token back to its user. Expired sessions are deleted
// on sight; inactive users no longer resolve even with a live session.
func (r *SessionRepository) Resolve(ctx context.Context, token string) (*models.User, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).First(&session, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		if err := r.db.WithContext(ctx).Delete(&session).Error; err != nil {
			return nil, fmt.Errorf("deleting expired session: %w", err)
		}
		return nil, ErrNotFound
	}

	var user models.User
	if err := r.db.WithContext(ctx).Preload("Role").First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching session user %d: %w", session.UserID, err)
	}
	if !user.IsActive {
		return nil, ErrNotFound
	}
	return &user, nil
}

// Logout deletes the session row. Unknown tokens are not an error.
func (r *SessionRepository) Logout(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// PurgeExpired removes every expired session row.
func (r *SessionRepository) PurgeExpired(ctx context.Context) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.Session{}, "expires_at < ?", time.Now()).Error; err != nil {
		return fmt.Errorf("purging sessions: %w", err)
	}
	return nil
}
