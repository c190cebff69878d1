package dto

import (
	"time"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

// FeedbackRequest is the public contact-form payload. Website is a honeypot
// field; any value marks the submission as spam.
type FeedbackRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Subject  string `json:"subject" validate:"required,max=200"`
	Message  string `json:"message" validate:"required,min=10"`
	Honeypot string `json:"website" validate:"omitempty"`
}

// FeedbackResponse acknowledges a stored feedback record.
type FeedbackResponse struct {
	ID          uint      `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewFeedbackResponse converts a Feedback model into its acknowledgement DTO.
func NewFeedbackResponse(model models.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:          model.ID,
		SubmittedAt: model.SubmittedAt,
	}
}
