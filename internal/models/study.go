package models

// Study defines the structure for imaging exam records.
type Study struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	PatientID        uint   `json:"patient_id" gorm:"index"` // Foreign key to Patient.ID
	StudyDate        string `json:"study_date"`              // "2006-01-02 15:04:05", server-assigned unless supplied
	StudyDescription string `json:"study_description"`
	Modality         string `json:"modality"`
	CreateTime       string `json:"create_time"`
	UpdateTime       string `json:"update_time"`
}
