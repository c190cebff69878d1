package models

import (
	"fmt"
	"strings"
)

// Question belongs to exactly one exam and carries four fixed options.
// CorrectOption is the index (0-3) of the correct option, so the
// referential invariant holds by construction once the index is in range.
type Question struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ExamID        uint   `gorm:"index;not null" json:"exam_id"`
	Text          string `gorm:"type:text;not null" json:"text"`
	Option1       string `gorm:"size:200;not null" json:"option1"`
	Option2       string `gorm:"size:200;not null" json:"option2"`
	Option3       string `gorm:"size:200;not null" json:"option3"`
	Option4       string `gorm:"size:200;not null" json:"option4"`
	CorrectOption int    `gorm:"not null" json:"correct_option"`
	Marks         int    `gorm:"not null;default:5" json:"marks"`
}

// Options returns the four options in display order.
func (q Question) Options() [4]string {
	return [4]string{q.Option1, q.Option2, q.Option3, q.Option4}
}

// CorrectText returns the literal text of the designated correct option.
// Callers may assume Validate passed at write time.
func (q Question) CorrectText() string {
	options := q.Options()
	if q.CorrectOption < 0 || q.CorrectOption >= len(options) {
		return ""
	}
	return options[q.CorrectOption]
}

// Validate enforces the write-time invariants: four non-empty options and a
// correct-option index inside the fixed range. Violations are validation
// failures for the caller, never scoring-time faults.
func (q Question) Validate() error {
	for i, option := range q.Options() {
		if strings.TrimSpace(option) == "" {
			return fmt.Errorf("option%d must not be empty", i+1)
		}
	}
	if q.CorrectOption < 0 || q.CorrectOption > 3 {
		return fmt.Errorf("correct_option must be between 0 and 3, got %d", q.CorrectOption)
	}
	if q.Marks < 0 {
		return fmt.Errorf("marks must not be negative")
	}
	return nil
}
