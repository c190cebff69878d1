package dto

import (
	"time"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

// ExamCreateRequest describes the payload for creating an exam.
type ExamCreateRequest struct {
	Title            string    `json:"title" validate:"required,max=200"`
	Description      string    `json:"description" validate:"required"`
	ScheduledAt      time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes  int       `json:"duration_minutes" validate:"required,gt=0"`
	MarksPerQuestion int       `json:"marks_per_question" validate:"omitempty,gt=0"`
	PassingMarks     int       `json:"passing_marks" validate:"omitempty,gte=0"`
}

// ExamUpdateRequest edits an owned exam.
type ExamUpdateRequest struct {
	Title            *string    `json:"title" validate:"omitempty,max=200"`
	Description      *string    `json:"description"`
	ScheduledAt      *time.Time `json:"scheduled_at"`
	DurationMinutes  *int       `json:"duration_minutes" validate:"omitempty,gt=0"`
	MarksPerQuestion *int       `json:"marks_per_question" validate:"omitempty,gt=0"`
	PassingMarks     *int       `json:"passing_marks" validate:"omitempty,gte=0"`
}

// ExamFilter describes catalog listing options.
type ExamFilter struct {
	Search   string `query:"search"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

// ExamCatalogResponse is the paginated catalog listing.
type ExamCatalogResponse struct {
	Exams    []ExamResponse `json:"exams"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// ExamResponse is returned to API clients when viewing exams.
type ExamResponse struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	ScheduledAt      time.Time `json:"scheduled_at"`
	DurationMinutes  int       `json:"duration_minutes"`
	MarksPerQuestion int       `json:"marks_per_question"`
	PassingMarks     int       `json:"passing_marks"`
	CreatedBy        uint      `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewExamResponse converts an Exam model into a DTO.
func NewExamResponse(model models.Exam) ExamResponse {
	return ExamResponse{
		ID:               model.ID,
		Title:            model.Title,
		Description:      model.Description,
		ScheduledAt:      model.ScheduledAt,
		DurationMinutes:  model.DurationMinutes,
		MarksPerQuestion: model.MarksPerQuestion,
		PassingMarks:     model.PassingMarks,
		CreatedBy:        model.CreatedBy,
		CreatedAt:        model.CreatedAt,
	}
}

// NewExamResponseSlice converts exam models into DTOs.
func NewExamResponseSlice(exams []models.Exam) []ExamResponse {
	responses := make([]ExamResponse, 0, len(exams))
	for _, exam := range exams {
		responses = append(responses, NewExamResponse(exam))
	}

	return responses
}
