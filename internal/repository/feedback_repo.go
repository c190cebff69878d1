package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

// FeedbackRepository persists contact-form feedback records.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	List(ctx context.Context) ([]models.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository constructs a repository backed by GORM.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) List(ctx context.Context) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := r.db.WithContext(ctx).
		Order("submitted_at DESC").
		Find(&feedback).Error; err != nil {
		return nil, err
	}

	return feedback, nil
}
