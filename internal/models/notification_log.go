package models

import "time"

type NotificationLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientName string `gorm:"size:100" json:"patient_name"`
	Type        string `gorm:"size:20" json:"type"`
	Status      string `gorm:"size:20" json:"status"`
	Details     string `gorm:"size:255" json:"details"`

	CreatedAt time.Time `json:"created_at"`
}
