package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

// StudentScoreRow is the raw per-student aggregate over an exam's responses.
type StudentScoreRow struct {
	StudentID     uint   `gorm:"column:student_id"`
	Username      string `gorm:"column:username"`
	TotalCorrect  int    `gorm:"column:total_correct"`
	AdjustedTotal int    `gorm:"column:adjusted_total"`
}

// QuestionStatsRow is the raw per-question attempt/correct aggregate.
type QuestionStatsRow struct {
	QuestionID   uint   `gorm:"column:question_id"`
	Text         string `gorm:"column:text"`
	Attempts     int    `gorm:"column:attempts"`
	CorrectCount int    `gorm:"column:correct_count"`
}

// ReportRepository exposes the aggregate queries behind analytics and progress.
type ReportRepository interface {
	DistinctStudents(ctx context.Context, examID uint) (int64, error)
	StudentScores(ctx context.Context, examID uint) ([]StudentScoreRow, error)
	QuestionStats(ctx context.Context, examID uint) ([]QuestionStatsRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository instantiates a GORM-backed repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) DistinctStudents(ctx context.Context, examID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Response{}).
		Where("exam_id = ?", examID).
		Distinct("student_id").
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *reportRepository) StudentScores(ctx context.Context, examID uint) ([]StudentScoreRow, error) {
	var rows []StudentScoreRow
	if err := r.db.WithContext(ctx).
		Model(&models.Response{}).
		Select(
			"responses.student_id AS student_id, "+
				"users.username AS username, "+
				"SUM(CASE WHEN responses.is_correct THEN 1 ELSE 0 END) AS total_correct, "+
				"COALESCE(SUM(responses.adjusted_marks), 0) AS adjusted_total",
		).
		Joins("JOIN users ON users.id = responses.student_id").
		Where("responses.exam_id = ?", examID).
		Group("responses.student_id, users.username").
		Order("users.username ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *reportRepository) QuestionStats(ctx context.Context, examID uint) ([]QuestionStatsRow, error) {
	var rows []QuestionStatsRow
	if err := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Select(
			"questions.id AS question_id, "+
				"questions.text AS text, "+
				"COUNT(responses.id) AS attempts, "+
				"SUM(CASE WHEN responses.is_correct THEN 1 ELSE 0 END) AS correct_count",
		).
		Joins("LEFT JOIN responses ON responses.question_id = questions.id").
		Where("questions.exam_id = ?", examID).
		Group("questions.id, questions.text").
		Order("questions.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
