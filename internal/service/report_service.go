package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/repository"
)

// ReportService produces teacher-facing progress and analytics views plus
// the student dashboard.
type ReportService interface {
	ExamProgress(ctx context.Context, examID uint, actor ActivityActor) (dto.ExamProgressResponse, error)
	ExamAnalytics(ctx context.Context, examID uint, actor ActivityActor) (dto.ExamAnalyticsResponse, error)
	StudentDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error)
}

type reportService struct {
	reports     repository.ReportRepository
	exams       repository.ExamRepository
	questions   repository.QuestionRepository
	attempts    repository.AttemptRepository
	assignments repository.AssignmentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewReportService constructs a ReportService instance. The cache client may
// be nil, in which case the dashboard is computed on every request.
func NewReportService(
	reports repository.ReportRepository,
	exams repository.ExamRepository,
	questions repository.QuestionRepository,
	attempts repository.AttemptRepository,
	assignments repository.AssignmentRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		reports:     reports,
		exams:       exams,
		questions:   questions,
		attempts:    attempts,
		assignments: assignments,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "report_service").Logger(),
	}
}

// ExamProgress classifies every assigned student as not started, in
// progress, or completed. A student whose answered count equals the question
// total is completed; the count is not capped, so a stale surplus from a
// question deleted after submission reads as in progress.
func (s *reportService) ExamProgress(ctx context.Context, examID uint, actor ActivityActor) (dto.ExamProgressResponse, error) {
	exam, err := s.ownedExam(ctx, examID, actor)
	if err != nil {
		return dto.ExamProgressResponse{}, err
	}

	total, err := s.questions.CountByExam(ctx, examID)
	if err != nil {
		return dto.ExamProgressResponse{}, err
	}

	assignments, err := s.assignments.ListByExam(ctx, examID)
	if err != nil {
		return dto.ExamProgressResponse{}, err
	}

	progress := make([]dto.StudentProgress, 0, len(assignments))
	for _, assignment := range assignments {
		answered, err := s.attempts.CountResponses(ctx, examID, assignment.StudentID)
		if err != nil {
			return dto.ExamProgressResponse{}, err
		}

		status := dto.ProgressNotStarted
		switch {
		case answered == total:
			status = dto.ProgressCompleted
		case answered > 0:
			status = dto.ProgressInProgress
		}

		progress = append(progress, dto.StudentProgress{
			StudentID: assignment.StudentID,
			Username:  assignment.Student.Username,
			Answered:  int(answered),
			Total:     int(total),
			Status:    status,
		})
	}

	return dto.ExamProgressResponse{
		Exam:     dto.NewExamResponse(exam),
		Progress: progress,
	}, nil
}

// ExamAnalytics aggregates scores and per-question statistics for an exam.
// Scores are valued at correct count times the exam's marks per question,
// plus any manual adjustments.
func (s *reportService) ExamAnalytics(ctx context.Context, examID uint, actor ActivityActor) (dto.ExamAnalyticsResponse, error) {
	exam, err := s.ownedExam(ctx, examID, actor)
	if err != nil {
		return dto.ExamAnalyticsResponse{}, err
	}

	questionCount, err := s.questions.CountByExam(ctx, examID)
	if err != nil {
		return dto.ExamAnalyticsResponse{}, err
	}
	maxMarks := int(questionCount) * exam.MarksPerQuestion

	totalStudents, err := s.reports.DistinctStudents(ctx, examID)
	if err != nil {
		return dto.ExamAnalyticsResponse{}, err
	}

	scoreRows, err := s.reports.StudentScores(ctx, examID)
	if err != nil {
		return dto.ExamAnalyticsResponse{}, err
	}

	scores := make([]dto.StudentScore, 0, len(scoreRows))
	scoreSum := 0
	for _, row := range scoreRows {
		total := row.TotalCorrect*exam.MarksPerQuestion + row.AdjustedTotal
		scoreSum += total

		percentage := 0.0
		if maxMarks > 0 {
			percentage = roundTwo(float64(total) / float64(maxMarks) * 100)
		}

		scores = append(scores, dto.StudentScore{
			StudentID:     row.StudentID,
			Username:      row.Username,
			TotalCorrect:  row.TotalCorrect,
			TotalMarks:    total,
			AdjustedTotal: row.AdjustedTotal,
			Percentage:    percentage,
		})
	}

	average := 0.0
	if len(scores) > 0 {
		average = roundTwo(float64(scoreSum) / float64(len(scores)))
	}

	statRows, err := s.reports.QuestionStats(ctx, examID)
	if err != nil {
		return dto.ExamAnalyticsResponse{}, err
	}

	stats := make([]dto.QuestionStats, 0, len(statRows))
	for _, row := range statRows {
		stats = append(stats, dto.QuestionStats{
			QuestionID:   row.QuestionID,
			Text:         row.Text,
			Attempts:     row.Attempts,
			CorrectCount: row.CorrectCount,
		})
	}

	return dto.ExamAnalyticsResponse{
		Exam:          dto.NewExamResponse(exam),
		TotalStudents: int(totalStudents),
		AverageScore:  average,
		MaxMarks:      maxMarks,
		StudentScores: scores,
		QuestionStats: stats,
	}, nil
}

// StudentDashboard lists the student's assigned exams and recent attempts.
// The assembled view is cached briefly to keep the landing page cheap.
func (s *reportService) StudentDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:student:%d", studentID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var dashboard dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &dashboard); unmarshalErr == nil {
				return dashboard, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("dashboard cache read failed")
		}
	}

	assignments, err := s.assignments.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	exams := make([]dto.ExamResponse, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.Exam.ID != 0 {
			exams = append(exams, dto.NewExamResponse(assignment.Exam))
		}
	}

	attempts, err := s.attempts.ListRecentByStudent(ctx, studentID, 5)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	recent := make([]dto.RecentAttempt, 0, len(attempts))
	for _, attempt := range attempts {
		entry := dto.RecentAttempt{
			ExamID:      attempt.ExamID,
			Score:       attempt.Score,
			MaxScore:    attempt.MaxScore,
			SubmittedAt: attempt.SubmittedAt,
		}

		exam, err := s.exams.GetByID(ctx, attempt.ExamID)
		if err == nil {
			entry.ExamTitle = exam.Title
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentDashboardResponse{}, err
		}

		recent = append(recent, entry)
	}

	dashboard := dto.StudentDashboardResponse{
		Exams:          exams,
		RecentAttempts: recent,
	}

	if s.cache != nil {
		encoded, err := json.Marshal(dashboard)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, encoded, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}

	return dashboard, nil
}

func (s *reportService) ownedExam(ctx context.Context, id uint, actor ActivityActor) (models.Exam, error) {
	exam, err := s.exams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Exam{}, ErrExamNotFound
		}
		return models.Exam{}, err
	}

	if exam.CreatedBy != actor.ID {
		return models.Exam{}, ErrNotExamOwner
	}

	return exam, nil
}
