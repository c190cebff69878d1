package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/repository"
)

// ErrExamNotFound indicates an exam could not be located.
var ErrExamNotFound = errors.New("exam not found")

// ErrNotExamOwner indicates the actor does not own the exam.
var ErrNotExamOwner = errors.New("exam belongs to another creator")

const (
	defaultMarksPerQuestion = 5
	defaultPassingMarks     = 22
)

// ExamService owns the exam lifecycle. Exams are visible and editable only
// by their creator; students reach them through the catalog instead.
type ExamService interface {
	ListOwned(ctx context.Context, actor ActivityActor) ([]dto.ExamResponse, error)
	Create(ctx context.Context, payload dto.ExamCreateRequest, actor ActivityActor) (dto.ExamResponse, error)
	Update(ctx context.Context, id uint, payload dto.ExamUpdateRequest, actor ActivityActor) (dto.ExamResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
	GetOwned(ctx context.Context, id uint, actor ActivityActor) (dto.ExamResponse, error)
	Catalog(ctx context.Context, filter dto.ExamFilter) (dto.ExamCatalogResponse, error)
}

type examService struct {
	exams     repository.ExamRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewExamService constructs an ExamService instance.
func NewExamService(exams repository.ExamRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ExamService {
	return &examService{
		exams:     exams,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "exam_service").Logger(),
	}
}

func (s *examService) ListOwned(ctx context.Context, actor ActivityActor) ([]dto.ExamResponse, error) {
	exams, err := s.exams.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewExamResponseSlice(exams), nil
}

func (s *examService) Create(ctx context.Context, payload dto.ExamCreateRequest, actor ActivityActor) (dto.ExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResponse{}, err
	}

	exam := models.Exam{
		Title:            payload.Title,
		Description:      payload.Description,
		ScheduledAt:      payload.ScheduledAt,
		DurationMinutes:  payload.DurationMinutes,
		MarksPerQuestion: payload.MarksPerQuestion,
		PassingMarks:     payload.PassingMarks,
		CreatedBy:        actor.ID,
	}
	if exam.MarksPerQuestion <= 0 {
		exam.MarksPerQuestion = defaultMarksPerQuestion
	}
	if exam.PassingMarks <= 0 {
		exam.PassingMarks = defaultPassingMarks
	}

	if err := s.exams.Create(ctx, &exam); err != nil {
		return dto.ExamResponse{}, err
	}

	s.logger.Info().Uint("exam_id", exam.ID).Uint("created_by", actor.ID).Msg("exam created")

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			ActorID:  actor.ID,
			Role:     actor.Role,
			Action:   "exam.created",
			EntityID: &exam.ID,
			Metadata: map[string]interface{}{"title": exam.Title},
		})
	}

	return dto.NewExamResponse(exam), nil
}

func (s *examService) Update(ctx context.Context, id uint, payload dto.ExamUpdateRequest, actor ActivityActor) (dto.ExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResponse{}, err
	}

	exam, err := s.ownedExam(ctx, id, actor)
	if err != nil {
		return dto.ExamResponse{}, err
	}

	if payload.Title != nil {
		exam.Title = *payload.Title
	}
	if payload.Description != nil {
		exam.Description = *payload.Description
	}
	if payload.ScheduledAt != nil {
		exam.ScheduledAt = *payload.ScheduledAt
	}
	if payload.DurationMinutes != nil {
		exam.DurationMinutes = *payload.DurationMinutes
	}
	if payload.MarksPerQuestion != nil {
		exam.MarksPerQuestion = *payload.MarksPerQuestion
	}
	if payload.PassingMarks != nil {
		exam.PassingMarks = *payload.PassingMarks
	}

	if err := s.exams.Update(ctx, &exam); err != nil {
		return dto.ExamResponse{}, err
	}

	return dto.NewExamResponse(exam), nil
}

func (s *examService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	exam, err := s.ownedExam(ctx, id, actor)
	if err != nil {
		return err
	}

	if err := s.exams.Delete(ctx, exam.ID); err != nil {
		return err
	}

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			ActorID:  actor.ID,
			Role:     actor.Role,
			Action:   "exam.deleted",
			EntityID: &exam.ID,
			Metadata: map[string]interface{}{"title": exam.Title},
		})
	}

	return nil
}

func (s *examService) GetOwned(ctx context.Context, id uint, actor ActivityActor) (dto.ExamResponse, error) {
	exam, err := s.ownedExam(ctx, id, actor)
	if err != nil {
		return dto.ExamResponse{}, err
	}

	return dto.NewExamResponse(exam), nil
}

// Catalog lists exams for browsing. Page size defaults to 20 and is capped
// at 100.
func (s *examService) Catalog(ctx context.Context, filter dto.ExamFilter) (dto.ExamCatalogResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	exams, total, err := s.exams.ListCatalog(ctx, repository.ExamFilter{
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return dto.ExamCatalogResponse{}, err
	}

	return dto.ExamCatalogResponse{
		Exams:    dto.NewExamResponseSlice(exams),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *examService) ownedExam(ctx context.Context, id uint, actor ActivityActor) (models.Exam, error) {
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
