package models

import "time"

// Feedback is a free-standing contact-form record with no relationships.
type Feedback struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	Subject     string    `gorm:"size:200;not null" json:"subject"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}
