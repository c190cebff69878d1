package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

// AssignmentRepository defines persistence operations for exam assignments.
type AssignmentRepository interface {
	ListByExam(ctx context.Context, examID uint) ([]models.ExamAssignment, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.ExamAssignment, error)
	Exists(ctx context.Context, examID, studentID uint) (bool, error)
	Create(ctx context.Context, assignment *models.ExamAssignment) error
	Delete(ctx context.Context, id uint) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) ListByExam(ctx context.Context, examID uint) ([]models.ExamAssignment, error) {
	var assignments []models.ExamAssignment
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("exam_id = ?", examID).
		Order("assigned_at ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.ExamAssignment, error) {
	var assignments []models.ExamAssignment
	if err := r.db.WithContext(ctx).
		Preload("Exam").
		Where("student_id = ?", studentID).
		Order("assigned_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) Exists(ctx context.Context, examID, studentID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ExamAssignment{}).
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.ExamAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ExamAssignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
