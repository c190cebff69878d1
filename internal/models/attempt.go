package models

import (
	"strings"
	"time"
)

// NotAnswered is stored as the selected option when a question was skipped.
const NotAnswered = "Not Answered"

// Attempt is one full submission of answers for a (student, exam) pair.
// Only the latest attempt per pair is retained; resubmission replaces it.
type Attempt struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	StudentID   uint       `gorm:"uniqueIndex:idx_attempt_student_exam;not null" json:"student_id"`
	ExamID      uint       `gorm:"uniqueIndex:idx_attempt_student_exam;not null" json:"exam_id"`
	Score       int        `gorm:"not null" json:"score"`
	MaxScore    int        `gorm:"not null" json:"max_score"`
	SubmittedAt time.Time  `json:"submitted_at"`
	Responses   []Response `json:"responses,omitempty"`
}

// Response is the stored outcome for one question of the latest attempt.
type Response struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AttemptID      uint      `gorm:"index;not null" json:"attempt_id"`
	StudentID      uint      `gorm:"uniqueIndex:idx_response_student_exam_question;not null" json:"student_id"`
	ExamID         uint      `gorm:"uniqueIndex:idx_response_student_exam_question;not null" json:"exam_id"`
	QuestionID     uint      `gorm:"uniqueIndex:idx_response_student_exam_question;not null" json:"question_id"`
	SelectedOption string    `gorm:"size:200;not null" json:"selected_option"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	AnsweredAt     time.Time `json:"answered_at"`
	ManuallyGraded bool      `gorm:"not null;default:false" json:"manually_graded"`
	TeacherComment string    `gorm:"type:text" json:"teacher_comment"`
	AdjustedMarks  *int      `json:"adjusted_marks"`
	Question       Question  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"question"`
}

// NormalizeAnswer prepares a submitted or correct option text for equality
// comparison: surrounding whitespace trimmed, then lower-cased.
func NormalizeAnswer(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// GradeFor maps a percentage to a display letter grade. Band lower bounds
// are inclusive.
func GradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}
