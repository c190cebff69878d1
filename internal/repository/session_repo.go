package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

// SessionRepository defines persistence operations for exam sessions.
type SessionRepository interface {
	GetOrCreate(ctx context.Context, studentID, examID uint, start time.Time) (models.ExamSession, error)
	MarkCompleted(ctx context.Context, studentID, examID uint) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository instantiates a GORM-backed repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// GetOrCreate returns the existing session for the pair or starts a new one.
// The unique (student, exam) index guards against duplicate sessions.
func (r *sessionRepository) GetOrCreate(ctx context.Context, studentID, examID uint, start time.Time) (models.ExamSession, error) {
	var session models.ExamSession
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		First(&session).Error
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ExamSession{}, err
	}

	session = models.ExamSession{
		StudentID: studentID,
		ExamID:    examID,
		StartTime: start,
	}
	if err := r.db.WithContext(ctx).Create(&session).Error; err != nil {
		return models.ExamSession{}, err
	}

	return session, nil
}

func (r *sessionRepository) MarkCompleted(ctx context.Context, studentID, examID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.ExamSession{}).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		Update("completed", true).
		Error
}
