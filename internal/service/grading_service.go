package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/repository"
)

// ErrResponseNotFound indicates the stored response does not exist.
var ErrResponseNotFound = errors.New("response not found")

// GradingService applies teacher overrides to stored responses.
type GradingService interface {
	OverrideResponse(ctx context.Context, examID, responseID uint, payload dto.ResponseOverrideRequest, actor ActivityActor) error
}

type gradingService struct {
	attempts repository.AttemptRepository
	exams    repository.ExamRepository
	activity ActivityRecorder
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewGradingService constructs a GradingService instance.
func NewGradingService(
	attempts repository.AttemptRepository,
	exams repository.ExamRepository,
	activity ActivityRecorder,
	logger zerolog.Logger,
) GradingService {
	return &gradingService{
		attempts: attempts,
		exams:    exams,
		activity: activity,
		logger:   logger.With().Str("component", "grading_service").Logger(),
		tracer:   otel.Tracer("github.com/sakib-arifin/exam-portal-api/internal/service/grading"),
	}
}

// OverrideResponse records a teacher comment and marks adjustment on one
// response. The automatic correctness flag is left untouched; analytics add
// the adjustment on top of the scored marks.
func (s *gradingService) OverrideResponse(ctx context.Context, examID, responseID uint, payload dto.ResponseOverrideRequest, actor ActivityActor) error {
	ctx, span := s.tracer.Start(ctx, "grading.override")
	span.SetAttributes(
		attribute.Int64("grading.exam_id", int64(examID)),
		attribute.Int64("grading.response_id", int64(responseID)),
	)
	defer span.End()

	exam, err := s.ownedExam(ctx, examID, actor)
	if err != nil {
		return err
	}

	response, err := s.attempts.GetResponse(ctx, responseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResponseNotFound
		}
		return err
	}
	if response.ExamID != exam.ID {
		return ErrResponseNotFound
	}

	response.ManuallyGraded = true
	response.TeacherComment = payload.TeacherComment
	response.AdjustedMarks = payload.AdjustedMarks

	if err := s.attempts.UpdateResponse(ctx, &response); err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.Info().
		Uint("exam_id", exam.ID).
		Uint("response_id", response.ID).
		Msg("response override applied")

	if s.activity != nil {
		metadata := map[string]interface{}{
			"exam_id":    exam.ID,
			"student_id": response.StudentID,
		}
		if payload.AdjustedMarks != nil {
			metadata["adjusted_marks"] = *payload.AdjustedMarks
		}
		s.activity.Record(ctx, ActivityEntry{
			ActorID:  actor.ID,
			Role:     actor.Role,
			Action:   "response.overridden",
			EntityID: &response.ID,
			Metadata: metadata,
		})
	}

	return nil
}

func (s *gradingService) ownedExam(ctx context.Context, id uint, actor ActivityActor) (models.Exam, error) {
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
