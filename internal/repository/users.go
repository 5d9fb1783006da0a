package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medrecords-backend/internal/auth"
	"medrecords-backend/internal/models"
)

// UserCreate carries the fields accepted when creating a user.
type UserCreate struct {
	Username string
	Password string // plaintext, hashed here
	RoleID   uint
}

// UserUpdate carries the allow-listed mutable fields: only the role and the
// active flag can change after creation. Nil members are left untouched.
type UserUpdate struct {
	RoleID   *uint
	IsActive *bool
}

// UserListing is a user row joined with its role name, without the hash.
type UserListing struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// List returns one page of users joined with their role name, plus the
// unfiltered total.
func (r *UserRepository) List(ctx context.Context, page, pageSize int) ([]UserListing, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	var users []UserListing
	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("users.id, users.username, roles.role_name AS role, users.is_active").
		Joins("JOIN roles ON roles.id = users.role_id").
		Order("users.id").Offset(offset).Limit(pageSize).
		Scan(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) Create(ctx context.Context, in UserCreate) (uint, error) {
	if in.Username == "" || in.Password == "" || in.RoleID == 0 {
		return 0, fmt.Errorf("%w: username, password and role_id are required", ErrValidation)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return 0, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().Format("2006-01-02 15:04:05")
	user := models.User{
		Username:   in.Username,
		Password:   hash,
		RoleID:     in.RoleID,
		IsActive:   true,
		CreateTime: now,
		UpdateTime: now,
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, in.RoleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: role %d", ErrReferenceNotFound, in.RoleID)
			}
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, ErrReferenceNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("creating user: %w", err)
	}
	return user.ID, nil
}

func (r *UserRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Role").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching user %d: %w", id, err)
	}
	return &user, nil
}

// GetByUsername does a case-sensitive exact-match lookup.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Role").
		Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching user %q: %w", username, err)
	}
	return &user, nil
}

// Update applies the non-nil fields atomically and returns the updated row.
func (r *UserRepository) Update(ctx context.Context, id uint, in UserUpdate) (*models.User, error) {
	changes := map[string]any{}
	if in.RoleID != nil {
		changes["role_id"] = *in.RoleID
	}
	if in.IsActive != nil {
		changes["is_active"] = *in.IsActive
	}

	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if len(changes) == 0 {
			return fmt.Errorf("%w: no updatable fields supplied", ErrValidation)
		}
		if in.RoleID != nil {
			var role models.Role
			if err := tx.First(&role, *in.RoleID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: role %d", ErrReferenceNotFound, *in.RoleID)
				}
				return err
			}
		}
		changes["update_time"] = time.Now().Format("2006-01-02 15:04:05")
		if err := tx.Model(&user).Updates(changes).Error; err != nil {
			return err
		}
		return tx.Preload("Role").First(&user, id).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) || errors.Is(err, ErrReferenceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}
	return &user, nil
}

// ListRoles returns the reference roles for form dropdowns.
func (r *UserRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.WithContext(ctx).Order("id").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	return roles, nil
}
