package models

// Patient defines the structure for patient records.
type Patient struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	Lastname   string  `json:"lastname" gorm:"index"`
	Firstname  string  `json:"firstname" gorm:"index"`
	Birthdate  *string `json:"birthdate"` // Optional field, "2006-01-02"
	Gender     *string `json:"gender"`    // Optional field
	CreateTime string  `json:"create_time"`
	UpdateTime string  `json:"update_time"`
}
