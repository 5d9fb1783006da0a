package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"medrecords-backend/internal/models"
)

// newTestDB opens a per-test in-memory database with the full schema and the
// seeded roles.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Patient{},
		&models.Study{},
		&models.Session{},
	))
	for _, name := range []string{models.RoleViewer, models.RoleModification, models.RoleAdmin} {
		require.NoError(t, db.Create(&models.Role{RoleName: name}).Error)
	}
	return db
}

func roleID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	var role models.Role
	require.NoError(t, db.Where("role_name = ?", name).First(&role).Error)
	return role.ID
}

func createPatient(t *testing.T, db *gorm.DB, lastname, firstname string) uint {
	t.Helper()
	id, err := NewPatientRepository(db).Create(context.Background(), PatientCreate{
		Lastname:  lastname,
		Firstname: firstname,
	})
	require.NoError(t, err)
	return id
}

func createStudy(t *testing.T, db *gorm.DB, patientID uint, description, modality, date string) uint {
	t.Helper()
	id, err := NewStudyRepository(db).Create(context.Background(), StudyCreate{
		PatientID:        patientID,
		StudyDescription: description,
		Modality:         modality,
		StudyDate:        date,
	})
	require.NoError(t, err)
	return id
}

func createUser(t *testing.T, db *gorm.DB, username, password, role string, active bool) uint {
	t.Helper()
	id, err := NewUserRepository(db).Create(context.Background(), UserCreate{
		Username: username,
		Password: password,
		RoleID:   roleID(t, db, role),
	})
	require.NoError(t, err)
	if !active {
		require.NoError(t, db.Model(&models.User{}).Where("id = ?", id).
			Update("is_active", false).Error)
	}
	return id
}

func strptr(s string) *string { return &s }
