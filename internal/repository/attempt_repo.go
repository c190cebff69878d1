package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

// AttemptRepository defines persistence operations for attempts and their
// response rows. Replacement of an attempt is all-or-nothing.
type AttemptRepository interface {
	Replace(ctx context.Context, attempt *models.Attempt, responses []models.Response) error
	LatestByStudent(ctx context.Context, studentID uint) (models.Attempt, error)
	ListRecentByStudent(ctx context.Context, studentID uint, limit int) ([]models.Attempt, error)
	ResponsesForAttempt(ctx context.Context, attemptID uint) ([]models.Response, error)
	GetResponse(ctx context.Context, id uint) (models.Response, error)
	UpdateResponse(ctx context.Context, response *models.Response) error
	CountResponses(ctx context.Context, examID, studentID uint) (int64, error)
}

type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository instantiates a GORM-backed repository.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

// Replace removes any prior attempt for the (student, exam) pair and writes
// the new attempt plus its responses inside a single transaction, so two
// overlapping submissions can never interleave a partial response set.
func (r *attemptRepository) Replace(ctx context.Context, attempt *models.Attempt, responses []models.Response) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("student_id = ? AND exam_id = ?", attempt.StudentID, attempt.ExamID).
			Delete(&models.Response{}).Error; err != nil {
			return err
		}

		if err := tx.
			Where("student_id = ? AND exam_id = ?", attempt.StudentID, attempt.ExamID).
			Delete(&models.Attempt{}).Error; err != nil {
			return err
		}

		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		if len(responses) == 0 {
			return nil
		}

		for i := range responses {
			responses[i].AttemptID = attempt.ID
		}

		return tx.Create(&responses).Error
	})
}

func (r *attemptRepository) LatestByStudent(ctx context.Context, studentID uint) (models.Attempt, error) {
	var attempt models.Attempt
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id DESC").
		First(&attempt).Error; err != nil {
		return models.Attempt{}, err
	}

	return attempt, nil
}

func (r *attemptRepository) ListRecentByStudent(ctx context.Context, studentID uint, limit int) ([]models.Attempt, error) {
	if limit <= 0 {
		limit = 5
	}

	var attempts []models.Attempt
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id DESC").
		Limit(limit).
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}

func (r *attemptRepository) ResponsesForAttempt(ctx context.Context, attemptID uint) ([]models.Response, error) {
	var responses []models.Response
	if err := r.db.WithContext(ctx).
		Preload("Question").
		Where("attempt_id = ?", attemptID).
		Order("question_id ASC").
		Find(&responses).Error; err != nil {
		return nil, err
	}

	return responses, nil
}

func (r *attemptRepository) GetResponse(ctx context.Context, id uint) (models.Response, error) {
	var response models.Response
	if err := r.db.WithContext(ctx).
		Preload("Question").
		First(&response, id).Error; err != nil {
		return models.Response{}, err
	}

	return response, nil
}

func (r *attemptRepository) UpdateResponse(ctx context.Context, response *models.Response) error {
	return r.db.WithContext(ctx).Save(response).Error
}

func (r *attemptRepository) CountResponses(ctx context.Context, examID, studentID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Response{}).
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
