package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/repository"
)

// ErrAssignmentExists indicates the (exam, student) pair is already assigned.
var ErrAssignmentExists = errors.New("exam already assigned to student")

// ErrAssignmentNotFound indicates no such assignment record.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentService manages which students are assigned to an exam.
type AssignmentService interface {
	Assign(ctx context.Context, examID, studentID uint, actor ActivityActor) (dto.AssignmentResponse, error)
	Unassign(ctx context.Context, examID, assignmentID uint, actor ActivityActor) error
	ListForExam(ctx context.Context, examID uint, actor ActivityActor) ([]dto.AssignmentResponse, error)
	ListForStudent(ctx context.Context, studentID uint) ([]dto.AssignmentResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	exams       repository.ExamRepository
	users       repository.UserRepository
	activity    ActivityRecorder
	logger      zerolog.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(
	assignments repository.AssignmentRepository,
	exams repository.ExamRepository,
	users repository.UserRepository,
	activity ActivityRecorder,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		exams:       exams,
		users:       users,
		activity:    activity,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) Assign(ctx context.Context, examID, studentID uint, actor ActivityActor) (dto.AssignmentResponse, error) {
	exam, err := s.ownedExam(ctx, examID, actor)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	if _, err := s.users.GetByIDAndRole(ctx, studentID, models.RoleStudent); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrUserNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	exists, err := s.assignments.Exists(ctx, examID, studentID)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}
	if exists {
		return dto.AssignmentResponse{}, ErrAssignmentExists
	}

	assignment := models.ExamAssignment{
		ExamID:    examID,
		StudentID: studentID,
	}
	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().
		Uint("exam_id", examID).
		Uint("student_id", studentID).
		Msg("exam assigned")

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			ActorID:  actor.ID,
			Role:     actor.Role,
			Action:   "exam.assigned",
			EntityID: &assignment.ID,
			Metadata: map[string]interface{}{
				"exam_id":    exam.ID,
				"student_id": studentID,
			},
		})
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Unassign(ctx context.Context, examID, assignmentID uint, actor ActivityActor) error {
	if _, err := s.ownedExam(ctx, examID, actor); err != nil {
		return err
	}

	if err := s.assignments.Delete(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			ActorID:  actor.ID,
			Role:     actor.Role,
			Action:   "exam.unassigned",
			EntityID: &assignmentID,
			Metadata: map[string]interface{}{"exam_id": examID},
		})
	}

	return nil
}

func (s *assignmentService) ListForExam(ctx context.Context, examID uint, actor ActivityActor) ([]dto.AssignmentResponse, error) {
	if _, err := s.ownedExam(ctx, examID, actor); err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListByExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	return toAssignmentResponses(assignments), nil
}

func (s *assignmentService) ListForStudent(ctx context.Context, studentID uint) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return toAssignmentResponses(assignments), nil
}

func (s *assignmentService) ownedExam(ctx context.Context, id uint, actor ActivityActor) (models.Exam, error) {
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

func toAssignmentResponses(assignments []models.ExamAssignment) []dto.AssignmentResponse {
	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, dto.NewAssignmentResponse(assignment))
	}
	return responses
}
