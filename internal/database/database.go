package database

import (
	"time"

	"medrecords-backend/internal/auth"
	"medrecords-backend/internal/config"
	"medrecords-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database connection.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Patient{},
		&models.Study{},
		&models.Session{},
	)
}

// Seed inserts the reference roles and a bootstrap admin account if missing.
// Without an initial admin the user management routes are unreachable.
func Seed(db *gorm.DB, adminPassword string) error {
	roles := []models.Role{
		{RoleName: models.RoleViewer, RoleDesc: "Read-only access to records"},
		{RoleName: models.RoleModification, RoleDesc: "Can create and edit patients and studies"},
		{RoleName: models.RoleAdmin, RoleDesc: "Full access including user management"},
	}
	for i := range roles {
		if err := db.Where("role_name = ?", roles[i].RoleName).
			FirstOrCreate(&roles[i]).Error; err != nil {
			return err
		}
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	var adminRole models.Role
	if err := db.Where("role_name = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}
	now := time.Now().Format("2006-01-02 15:04:05")
	admin := models.User{
		Username:   "admin",
		Password:   hash,
		RoleID:     adminRole.ID,
		IsActive:   true,
		CreateTime: now,
		UpdateTime: now,
	}
	return db.Create(&admin).Error
}
