package models

import "time"

// Exam represents a scheduled multiple-choice exam owned by its creator.
type Exam struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Title            string     `gorm:"size:200;not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	ScheduledAt      time.Time  `gorm:"not null" json:"scheduled_at"`
	DurationMinutes  int        `gorm:"not null" json:"duration_minutes"`
	MarksPerQuestion int        `gorm:"not null;default:5" json:"marks_per_question"`
	PassingMarks     int        `gorm:"not null;default:22" json:"passing_marks"`
	CreatedBy        uint       `gorm:"index;not null" json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Questions        []Question `json:"questions,omitempty"`
}

// Deadline returns the advisory end-of-attempt time for an attempt starting at start.
// The deadline is display data only; the server never force-submits.
func (e Exam) Deadline(start time.Time) time.Time {
	return start.Add(time.Duration(e.DurationMinutes) * time.Minute)
}
