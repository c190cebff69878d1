package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/repository"
)

// ErrQuestionNotFound indicates the question does not exist under the exam.
var ErrQuestionNotFound = errors.New("question not found")

// ErrQuestionInvalid wraps a write-time validation failure of the
// option/correct-option invariant.
var ErrQuestionInvalid = errors.New("question validation failed")

// QuestionService owns the question lifecycle of an owned exam.
type QuestionService interface {
	List(ctx context.Context, examID uint, actor ActivityActor) ([]dto.QuestionResponse, error)
	Create(ctx context.Context, examID uint, payload dto.QuestionCreateRequest, actor ActivityActor) (dto.QuestionResponse, error)
	Update(ctx context.Context, examID, id uint, payload dto.QuestionUpdateRequest, actor ActivityActor) (dto.QuestionResponse, error)
	Delete(ctx context.Context, examID, id uint, actor ActivityActor) error
}

type questionService struct {
	questions repository.QuestionRepository
	exams     repository.ExamRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewQuestionService constructs a QuestionService instance.
func NewQuestionService(questions repository.QuestionRepository, exams repository.ExamRepository, validate *validator.Validate, logger zerolog.Logger) QuestionService {
	return &questionService{
		questions: questions,
		exams:     exams,
		validator: validate,
		logger:    logger.With().Str("component", "question_service").Logger(),
	}
}

func (s *questionService) List(ctx context.Context, examID uint, actor ActivityActor) ([]dto.QuestionResponse, error) {
	if _, err := s.ownedExam(ctx, examID, actor); err != nil {
		return nil, err
	}

	questions, err := s.questions.ListByExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	return dto.NewQuestionResponseSlice(questions), nil
}

func (s *questionService) Create(ctx context.Context, examID uint, payload dto.QuestionCreateRequest, actor ActivityActor) (dto.QuestionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuestionResponse{}, err
	}

	exam, err := s.ownedExam(ctx, examID, actor)
	if err != nil {
		return dto.QuestionResponse{}, err
	}

	question := models.Question{
		ExamID:        exam.ID,
		Text:          payload.Text,
		Option1:       payload.Option1,
		Option2:       payload.Option2,
		Option3:       payload.Option3,
		Option4:       payload.Option4,
		CorrectOption: payload.CorrectOption,
		Marks:         payload.Marks,
	}
	if question.Marks <= 0 {
		question.Marks = exam.MarksPerQuestion
	}

	if err := question.Validate(); err != nil {
		return dto.QuestionResponse{}, fmt.Errorf("%w: %s", ErrQuestionInvalid, err)
	}

	if err := s.questions.Create(ctx, &question); err != nil {
		return dto.QuestionResponse{}, err
	}

	s.logger.Info().Uint("question_id", question.ID).Uint("exam_id", exam.ID).Msg("question created")

	return dto.NewQuestionResponse(question), nil
}

func (s *questionService) Update(ctx context.Context, examID, id uint, payload dto.QuestionUpdateRequest, actor ActivityActor) (dto.QuestionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuestionResponse{}, err
	}

	if _, err := s.ownedExam(ctx, examID, actor); err != nil {
		return dto.QuestionResponse{}, err
	}

	question, err := s.questions.GetByID(ctx, examID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuestionResponse{}, ErrQuestionNotFound
		}
		return dto.QuestionResponse{}, err
	}

	if payload.Text != nil {
		question.Text = *payload.Text
	}
	if payload.Option1 != nil {
		question.Option1 = *payload.Option1
	}
	if payload.Option2 != nil {
		question.Option2 = *payload.Option2
	}
	if payload.Option3 != nil {
		question.Option3 = *payload.Option3
	}
	if payload.Option4 != nil {
		question.Option4 = *payload.Option4
	}
	if payload.CorrectOption != nil {
		question.CorrectOption = *payload.CorrectOption
	}
	if payload.Marks != nil {
		question.Marks = *payload.Marks
	}

	if err := question.Validate(); err != nil {
		return dto.QuestionResponse{}, fmt.Errorf("%w: %s", ErrQuestionInvalid, err)
	}

	if err := s.questions.Update(ctx, &question); err != nil {
		return dto.QuestionResponse{}, err
	}

	return dto.NewQuestionResponse(question), nil
}

func (s *questionService) Delete(ctx context.Context, examID, id uint, actor ActivityActor) error {
	if _, err := s.ownedExam(ctx, examID, actor); err != nil {
		return err
	}

	if err := s.questions.Delete(ctx, examID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	return nil
}

func (s *questionService) ownedExam(ctx context.Context, examID uint, actor ActivityActor) (models.Exam, error) {
	exam, err := s.exams.GetByID(ctx, examID)
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
