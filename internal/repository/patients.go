package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medrecords-backend/internal/models"
)

// PatientCreate carries the fields accepted when creating a patient.
type PatientCreate struct {
	Lastname  string
	Firstname string
	Birthdate *string
	Gender    *string
}

// PatientUpdate carries the allow-listed mutable fields for a partial update.
// Nil members are left untouched.
type PatientUpdate struct {
	Lastname  *string
	Firstname *string
	Birthdate *string
	Gender    *string
}

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// List returns one page of patients ordered by id, plus the unfiltered total.
func (r *PatientRepository) List(ctx context.Context, page, pageSize int) ([]models.Patient, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Patient{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting patients: %w", err)
	}

	var patients []models.Patient
	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(pageSize).
		Find(&patients).Error; err != nil {
		return nil, 0, fmt.Errorf("listing patients: %w", err)
	}
	return patients, total, nil
}

// ListAll returns every patient ordered by name, for the study form dropdown.
func (r *PatientRepository) ListAll(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := r.db.WithContext(ctx).Order("lastname, firstname").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) Create(ctx context.Context, in PatientCreate) (uint, error) {
	if in.Lastname == "" || in.Firstname == "" {
		return 0, fmt.Errorf("%w: lastname and firstname are required", ErrValidation)
	}

	now := time.Now().Format("2006-01-02 15:04:05")
	patient := models.Patient{
		Lastname:   in.Lastname,
		Firstname:  in.Firstname,
		Birthdate:  in.Birthdate,
		Gender:     in.Gender,
		CreateTime: now,
		UpdateTime: now,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&patient).Error
	})
	if err != nil {
		return 0, fmt.Errorf("creating patient: %w", err)
	}
	return patient.ID, nil
}

func (r *PatientRepository) Get(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching patient %d: %w", id, err)
	}
	return &patient, nil
}

// Update applies the non-nil fields atomically and returns the updated row.
func (r *PatientRepository) Update(ctx context.Context, id uint, in PatientUpdate) (*models.Patient, error) {
	changes := map[string]any{}
	if in.Lastname != nil {
		changes["lastname"] = *in.Lastname
	}
	if in.Firstname != nil {
		changes["firstname"] = *in.Firstname
	}
	if in.Birthdate != nil {
		changes["birthdate"] = *in.Birthdate
	}
	if in.Gender != nil {
		changes["gender"] = *in.Gender
	}

	var patient models.Patient
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&patient, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if len(changes) == 0 {
			return fmt.Errorf("%w: no updatable fields supplied", ErrValidation)
		}
		changes["update_time"] = time.Now().Format("2006-01-02 15:04:05")
		if err := tx.Model(&patient).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&patient, id).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("updating patient %d: %w", id, err)
	}
	return &patient, nil
}
