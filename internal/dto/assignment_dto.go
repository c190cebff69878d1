package dto

import (
	"time"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

// AssignmentCreateRequest assigns an exam to one student.
type AssignmentCreateRequest struct {
	StudentID uint `json:"student_id" validate:"required,gt=0"`
}

// AssignmentResponse is returned when listing or creating assignments.
type AssignmentResponse struct {
	ID         uint      `json:"id"`
	ExamID     uint      `json:"exam_id"`
	StudentID  uint      `json:"student_id"`
	AssignedAt time.Time `json:"assigned_at"`
	ExamTitle  string    `json:"exam_title,omitempty"`
	Student    string    `json:"student,omitempty"`
}

// NewAssignmentResponse converts an ExamAssignment model into a DTO.
func NewAssignmentResponse(model models.ExamAssignment) AssignmentResponse {
	response := AssignmentResponse{
		ID:         model.ID,
		ExamID:     model.ExamID,
		StudentID:  model.StudentID,
		AssignedAt: model.AssignedAt,
	}

	if model.Exam.ID != 0 {
		response.ExamTitle = model.Exam.Title
	}
	if model.Student.ID != 0 {
		response.Student = model.Student.Username
	}

	return response
}

// NewAssignmentResponseSlice converts assignment models into DTOs.
func NewAssignmentResponseSlice(assignments []models.ExamAssignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
