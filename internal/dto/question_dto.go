package dto

import "github.com/sakib-arifin/exam-portal-api/internal/models"

// QuestionCreateRequest describes the payload for adding a question to an exam.
type QuestionCreateRequest struct {
	Text          string `json:"text" validate:"required"`
	Option1       string `json:"option1" validate:"required,max=200"`
	Option2       string `json:"option2" validate:"required,max=200"`
	Option3       string `json:"option3" validate:"required,max=200"`
	Option4       string `json:"option4" validate:"required,max=200"`
	CorrectOption int    `json:"correct_option" validate:"gte=0,lte=3"`
	Marks         int    `json:"marks" validate:"omitempty,gt=0"`
}

// QuestionUpdateRequest edits an existing question.
type QuestionUpdateRequest struct {
	Text          *string `json:"text"`
	Option1       *string `json:"option1" validate:"omitempty,max=200"`
	Option2       *string `json:"option2" validate:"omitempty,max=200"`
	Option3       *string `json:"option3" validate:"omitempty,max=200"`
	Option4       *string `json:"option4" validate:"omitempty,max=200"`
	CorrectOption *int    `json:"correct_option" validate:"omitempty,gte=0,lte=3"`
	Marks         *int    `json:"marks" validate:"omitempty,gt=0"`
}

// QuestionResponse is the teacher-facing shape of a question, answer included.
type QuestionResponse struct {
	ID            uint     `json:"id"`
	ExamID        uint     `json:"exam_id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Marks         int      `json:"marks"`
}

// NewQuestionResponse converts a Question model into a DTO.
func NewQuestionResponse(model models.Question) QuestionResponse {
	options := model.Options()
	return QuestionResponse{
		ID:            model.ID,
		ExamID:        model.ExamID,
		Text:          model.Text,
		Options:       options[:],
		CorrectOption: model.CorrectOption,
		Marks:         model.Marks,
	}
}

// NewQuestionResponseSlice converts question models into DTOs.
func NewQuestionResponseSlice(questions []models.Question) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, NewQuestionResponse(question))
	}

	return responses
}
