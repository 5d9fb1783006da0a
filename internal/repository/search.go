package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"medrecords-backend/internal/models"
)

// SearchResult is one joined patient/study row from the API search. Study
// columns are pointers because the left join admits patients without studies.
type SearchResult struct {
	PatientID        uint    `json:"patient_id"`
	Lastname         string  `json:"lastname"`
	Firstname        string  `json:"firstname"`
	Birthdate        *string `json:"birthdate"`
	Gender           *string `json:"gender"`
	StudyID          *uint   `json:"study_id"`
	StudyDate        *string `json:"study_date"`
	StudyDescription *string `json:"study_description"`
	Modality         *string `json:"modality"`
}

// FeedEntry is one joined study/patient row from the dashboard feed.
type FeedEntry struct {
	PatientID        uint   `json:"patient_id"`
	Lastname         string `json:"lastname"`
	Firstname        string `json:"firstname"`
	StudyID          uint   `json:"study_id"`
	StudyDate        string `json:"study_date"`
	StudyDescription string `json:"study_description"`
	Modality         string `json:"modality"`
}

type SearchRepository struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search matches the query as a case-insensitive substring across patient
// names and study description/modality. Patients LEFT JOIN studies, so a
// matching patient without studies still appears. Rows are ordered newest
// study first with study-less rows last; ties fall back to storage order.
func (r *SearchRepository) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrValidation)
	}
	term := "%" + strings.ToLower(query) + "%"

	var results []SearchResult
	err := r.db.WithContext(ctx).Model(&models.Patient{}).
		Select(`patients.id AS patient_id, patients.lastname, patients.firstname,
			patients.birthdate, patients.gender,
			studies.id AS study_id, studies.study_date, studies.study_description, studies.modality`).
		Joins("LEFT JOIN studies ON studies.patient_id = patients.id").
		Where(`LOWER(patients.lastname) LIKE ? OR LOWER(patients.firstname) LIKE ?
			OR LOWER(studies.study_description) LIKE ? OR LOWER(studies.modality) LIKE ?`,
			term, term, term, term).
		Order("studies.study_date IS NULL, studies.study_date DESC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("searching records: %w", err)
	}
	return results, nil
}

// DashboardFeed lists studies INNER JOINed with their patients, newest first.
// Unlike Search, an empty query means "everything" rather than an error.
func (r *SearchRepository) DashboardFeed(ctx context.Context, query string) ([]FeedEntry, error) {
	tx := r.db.WithContext(ctx).Model(&models.Study{}).
		Select(`patients.id AS patient_id, patients.lastname, patients.firstname,
			studies.id AS study_id, studies.study_date, studies.study_description, studies.modality`).
		Joins("JOIN patients ON patients.id = studies.patient_id")

	if q := strings.TrimSpace(query); q != "" {
		term := "%" + strings.ToLower(q) + "%"
		tx = tx.Where(`LOWER(patients.lastname) LIKE ? OR LOWER(patients.firstname) LIKE ?
			OR LOWER(studies.study_description) LIKE ? OR LOWER(studies.modality) LIKE ?`,
			term, term, term, term)
	}

	var entries []FeedEntry
	if err := tx.Order("studies.study_date DESC").Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("loading dashboard feed: %w", err)
	}
	return entries, nil
}
