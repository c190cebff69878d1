package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/observability"
	"github.com/sakib-arifin/exam-portal-api/internal/repository"
)

// AttemptService drives the exam-taking workflow: handing out the paper,
// scoring a submission, and assembling the latest result view.
type AttemptService interface {
	Begin(ctx context.Context, examID uint, student ActivityActor) (dto.ExamPaperResponse, error)
	Submit(ctx context.Context, examID uint, student ActivityActor, payload dto.AttemptSubmitRequest) (dto.AttemptOutcomeResponse, error)
	LatestResult(ctx context.Context, studentID uint) (dto.ExamResultResponse, error)
}

type attemptService struct {
	attempts  repository.AttemptRepository
	exams     repository.ExamRepository
	questions repository.QuestionRepository
	sessions  repository.SessionRepository
	activity  ActivityRecorder
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewAttemptService constructs an AttemptService instance.
func NewAttemptService(
	attempts repository.AttemptRepository,
	exams repository.ExamRepository,
	questions repository.QuestionRepository,
	sessions repository.SessionRepository,
	activity ActivityRecorder,
	logger zerolog.Logger,
) AttemptService {
	return &attemptService{
		attempts:  attempts,
		exams:     exams,
		questions: questions,
		sessions:  sessions,
		activity:  activity,
		logger:    logger.With().Str("component", "attempt_service").Logger(),
		tracer:    otel.Tracer("github.com/sakib-arifin/exam-portal-api/internal/service/attempt"),
		now:       time.Now,
	}
}

// Begin loads the exam paper for a student. The deadline is derived from the
// session start plus the exam duration and is advisory only.
func (s *attemptService) Begin(ctx context.Context, examID uint, student ActivityActor) (dto.ExamPaperResponse, error) {
	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamPaperResponse{}, ErrExamNotFound
		}
		return dto.ExamPaperResponse{}, err
	}

	questions, err := s.questions.ListByExam(ctx, examID)
	if err != nil {
		return dto.ExamPaperResponse{}, err
	}

	session, err := s.sessions.GetOrCreate(ctx, student.ID, examID, s.now())
	if err != nil {
		return dto.ExamPaperResponse{}, err
	}

	paper := make([]dto.PaperQuestion, 0, len(questions))
	for _, question := range questions {
		paper = append(paper, dto.NewPaperQuestion(question))
	}

	return dto.ExamPaperResponse{
		Exam:             dto.NewExamResponse(exam),
		Questions:        paper,
		StartedAt:        session.StartTime,
		Deadline:         exam.Deadline(session.StartTime),
		RemainingSeconds: session.Remaining(exam, s.now()),
	}, nil
}

// Submit scores one attempt. Any prior attempt for the (student, exam) pair
// is replaced wholesale inside one transaction, so resubmission is
// idempotent at attempt granularity.
func (s *attemptService) Submit(ctx context.Context, examID uint, student ActivityActor, payload dto.AttemptSubmitRequest) (dto.AttemptOutcomeResponse, error) {
	ctx, span := s.tracer.Start(ctx, "attempt.submit")
	span.SetAttributes(
		attribute.Int64("attempt.exam_id", int64(examID)),
		attribute.Int64("attempt.student_id", int64(student.ID)),
	)
	defer span.End()

	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "exam_not_found")
			return dto.AttemptOutcomeResponse{}, ErrExamNotFound
		}
		span.RecordError(err)
		return dto.AttemptOutcomeResponse{}, err
	}

	questions, err := s.questions.ListByExam(ctx, examID)
	if err != nil {
		span.RecordError(err)
		return dto.AttemptOutcomeResponse{}, err
	}

	submittedAt := s.now()
	score := 0
	maxScore := 0
	responses := make([]models.Response, 0, len(questions))

	for _, question := range questions {
		maxScore += question.Marks

		raw, answered := payload.Answers[question.ID]
		raw = strings.TrimSpace(raw)

		selected := models.NotAnswered
		isCorrect := false
		if answered && raw != "" {
			selected = raw
			isCorrect = models.NormalizeAnswer(raw) == models.NormalizeAnswer(question.CorrectText())
		}

		if isCorrect {
			score += question.Marks
		}

		responses = append(responses, models.Response{
			StudentID:      student.ID,
			ExamID:         exam.ID,
			QuestionID:     question.ID,
			SelectedOption: selected,
			IsCorrect:      isCorrect,
			AnsweredAt:     submittedAt,
		})
	}

	attempt := models.Attempt{
		StudentID:   student.ID,
		ExamID:      exam.ID,
		Score:       score,
		MaxScore:    maxScore,
		SubmittedAt: submittedAt,
	}

	if err := s.attempts.Replace(ctx, &attempt, responses); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "attempt_replace_failed")
		return dto.AttemptOutcomeResponse{}, err
	}

	if err := s.sessions.MarkCompleted(ctx, student.ID, exam.ID); err != nil {
		s.logger.Warn().Err(err).Uint("exam_id", exam.ID).Msg("failed to mark session completed")
	}

	percentage := 0.0
	if maxScore > 0 {
		percentage = float64(score) / float64(maxScore) * 100
	}
	percentage = roundTwo(percentage)
	passed := score >= exam.PassingMarks

	result := "fail"
	message := fmt.Sprintf("Exam submitted! You failed with %d/%d marks (%.2f%%).", score, maxScore, percentage)
	if passed {
		result = "pass"
		message = fmt.Sprintf("Exam submitted! You passed with %d/%d marks (%.2f%%).", score, maxScore, percentage)
	}
	observability.Submissions().WithLabelValues(result).Inc()

	s.logger.Info().
		Uint("exam_id", exam.ID).
		Uint("student_id", student.ID).
		Int("score", score).
		Int("max_score", maxScore).
		Bool("passed", passed).
		Msg("attempt submitted")

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			ActorID:  student.ID,
			Role:     student.Role,
			Action:   "attempt.submitted",
			EntityID: &attempt.ID,
			Metadata: map[string]interface{}{
				"exam_id":   exam.ID,
				"score":     score,
				"max_score": maxScore,
			},
		})
	}

	span.SetAttributes(
		attribute.Int("attempt.score", score),
		attribute.Int("attempt.max_score", maxScore),
		attribute.Bool("attempt.passed", passed),
	)

	return dto.AttemptOutcomeResponse{
		Passed:     passed,
		Score:      score,
		MaxScore:   maxScore,
		Percentage: percentage,
		Message:    message,
	}, nil
}

// LatestResult assembles the result view for the student's most recent
// attempt across all exams. Score and max are recomputed from the stored
// responses, not read from the attempt row.
func (s *attemptService) LatestResult(ctx context.Context, studentID uint) (dto.ExamResultResponse, error) {
	attempt, err := s.attempts.LatestByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResultResponse{HasResult: false}, nil
		}
		return dto.ExamResultResponse{}, err
	}

	exam, err := s.exams.GetByID(ctx, attempt.ExamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResultResponse{}, ErrExamNotFound
		}
		return dto.ExamResultResponse{}, err
	}

	responses, err := s.attempts.ResponsesForAttempt(ctx, attempt.ID)
	if err != nil {
		return dto.ExamResultResponse{}, err
	}

	score := 0
	maxScore := 0
	rows := make([]dto.ResultResponseRow, 0, len(responses))
	for _, response := range responses {
		question := response.Question
		maxScore += question.Marks
		if response.IsCorrect {
			score += question.Marks
		}

		options := question.Options()
		rows = append(rows, dto.ResultResponseRow{
			QuestionID:     question.ID,
			Text:           question.Text,
			Options:        options[:],
			CorrectAnswer:  question.CorrectText(),
			SelectedOption: response.SelectedOption,
			IsCorrect:      response.IsCorrect,
			Marks:          question.Marks,
		})
	}

	percentage := 0.0
	if maxScore > 0 {
		percentage = roundTwo(float64(score) / float64(maxScore) * 100)
	}

	status := "Fail"
	if score >= exam.PassingMarks {
		status = "Pass"
	}

	return dto.ExamResultResponse{
		HasResult: true,
		Result: &dto.ExamResultDetail{
			Exam:        dto.NewExamResponse(exam),
			Responses:   rows,
			Score:       score,
			MaxScore:    maxScore,
			Percentage:  percentage,
			Status:      status,
			Grade:       models.GradeFor(percentage),
			SubmittedAt: attempt.SubmittedAt,
		},
	}, nil
}

func roundTwo(value float64) float64 {
	return math.Round(value*100) / 100
}
