package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medrecords-backend/internal/models"
)

// StudyCreate carries the fields accepted when creating a study. StudyDate is
// server-assigned when empty.
type StudyCreate struct {
	PatientID        uint
	StudyDate        string
	StudyDescription string
	Modality         string
}

// StudyUpdate carries the allow-listed mutable fields for a partial update.
// Only description and modality are mutable after creation.
type StudyUpdate struct {
	StudyDescription *string
	Modality         *string
}

// StudyDetail is a study joined with its patient's name for the detail view.
type StudyDetail struct {
	models.Study
	PatientLastname  string `json:"patient_lastname"`
	PatientFirstname string `json:"patient_firstname"`
}

type StudyRepository struct {
	db *gorm.DB
}

func NewStudyRepository(db *gorm.DB) *StudyRepository {
	return &StudyRepository{db: db}
}

// List returns one page of studies ordered by study date descending, plus the
// unfiltered total.
func (r *StudyRepository) List(ctx context.Context, page, pageSize int) ([]models.Study, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Study{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting studies: %w", err)
	}

	var studies []models.Study
	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).Order("study_date DESC, id").Offset(offset).Limit(pageSize).
		Find(&studies).Error; err != nil {
		return nil, 0, fmt.Errorf("listing studies: %w", err)
	}
	return studies, total, nil
}

// ListByPatient returns all studies for one patient, newest first.
func (r *StudyRepository) ListByPatient(ctx context.Context, patientID uint) ([]models.Study, error) {
	var studies []models.Study
	if err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).
		Order("study_date DESC").Find(&studies).Error; err != nil {
		return nil, fmt.Errorf("listing studies for patient %d: %w", patientID, err)
	}
	return studies, nil
}

func (r *StudyRepository) Create(ctx context.Context, in StudyCreate) (uint, error) {
	if in.PatientID == 0 || in.StudyDescription == "" || in.Modality == "" {
		return 0, fmt.Errorf("%w: patient_id, study_description and modality are required", ErrValidation)
	}

	now := time.Now().Format("2006-01-02 15:04:05")
	study := models.Study{
		PatientID:        in.PatientID,
		StudyDate:        in.StudyDate,
		StudyDescription: in.StudyDescription,
		Modality:         in.Modality,
		CreateTime:       now,
		UpdateTime:       now,
	}
	if study.StudyDate == "" {
		study.StudyDate = now
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.Select("id").First(&patient, in.PatientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: patient %d", ErrReferenceNotFound, in.PatientID)
			}
			return err
		}
		return tx.Create(&study).Error
	})
	if err != nil {
		if errors.Is(err, ErrReferenceNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("creating study: %w", err)
	}
	return study.ID, nil
}

func (r *StudyRepository) Get(ctx context.Context, id uint) (*models.Study, error) {
	var study models.Study
	if err := r.db.WithContext(ctx).First(&study, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching study %d: %w", id, err)
	}
	return &study, nil
}

// GetDetail returns the study joined with its patient's name.
func (r *StudyRepository) GetDetail(ctx context.Context, id uint) (*StudyDetail, error) {
	var detail StudyDetail
	err := r.db.WithContext(ctx).Model(&models.Study{}).
		Select("studies.*, patients.lastname AS patient_lastname, patients.firstname AS patient_firstname").
		Joins("JOIN patients ON patients.id = studies.patient_id").
		Where("studies.id = ?", id).
		Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching study %d: %w", id, err)
	}
	return &detail, nil
}

// Update applies the non-nil fields atomically and returns the updated row.
func (r *StudyRepository) Update(ctx context.Context, id uint, in StudyUpdate) (*models.Study, error) {
	changes := map[string]any{}
	if in.StudyDescription != nil {
		changes["study_description"] = *in.StudyDescription
	}
	if in.Modality != nil {
		changes["modality"] = *in.Modality
	}

	var study models.Study
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&study, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if len(changes) == 0 {
			return fmt.Errorf("%w: no updatable fields supplied", ErrValidation)
		}
		changes["update_time"] = time.Now().Format("2006-01-02 15:04:05")
		if err := tx.Model(&study).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&study, id).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("updating study %d: %w", id, err)
	}
	return &study, nil
}
