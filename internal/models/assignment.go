package models

import "time"

// ExamAssignment designates that a student is expected to take an exam.
// A student is assigned a given exam at most once.
type ExamAssignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExamID     uint      `gorm:"uniqueIndex:idx_assignment_exam_student;not null" json:"exam_id"`
	StudentID  uint      `gorm:"uniqueIndex:idx_assignment_exam_student;not null" json:"student_id"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`
	Exam       Exam      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"exam,omitempty"`
	Student    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student,omitempty"`
}

// ExamSession tracks when a student opened an exam; used only to derive
// elapsed/remaining time for display.
type ExamSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"uniqueIndex:idx_session_student_exam;not null" json:"student_id"`
	ExamID    uint      `gorm:"uniqueIndex:idx_session_student_exam;not null" json:"exam_id"`
	StartTime time.Time `json:"start_time"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
}

// Elapsed returns how long the session has been running at reference time.
func (s ExamSession) Elapsed(reference time.Time) time.Duration {
	return reference.Sub(s.StartTime)
}

// Remaining returns the seconds left against the exam duration, floored at zero.
func (s ExamSession) Remaining(exam Exam, reference time.Time) int {
	remaining := exam.DurationMinutes*60 - int(s.Elapsed(reference).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}
