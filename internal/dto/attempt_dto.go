package dto

import (
	"time"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

// PaperQuestion is the student-facing shape of a question: options in
// display order, no correct answer leaked.
type PaperQuestion struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Marks   int      `json:"marks"`
}

// ExamPaperResponse is handed to a student beginning an attempt. The
// deadline is advisory display data; the server never force-submits.
type ExamPaperResponse struct {
	Exam             ExamResponse    `json:"exam"`
	Questions        []PaperQuestion `json:"questions"`
	StartedAt        time.Time       `json:"started_at"`
	Deadline         time.Time       `json:"deadline"`
	RemainingSeconds int             `json:"remaining_seconds"`
}

// AttemptSubmitRequest maps question identifiers to the raw submitted
// option text. Absent questions are recorded as not answered.
type AttemptSubmitRequest struct {
	Answers map[uint]string `json:"answers"`
}

// AttemptOutcomeResponse is the transient advisory outcome of a submission.
type AttemptOutcomeResponse struct {
	Passed     bool    `json:"passed"`
	Score      int     `json:"score"`
	MaxScore   int     `json:"max_score"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message"`
}

// ResultResponseRow details one stored response in the latest-result view.
type ResultResponseRow struct {
	QuestionID     uint     `json:"question_id"`
	Text           string   `json:"text"`
	Options        []string `json:"options"`
	CorrectAnswer  string   `json:"correct_answer"`
	SelectedOption string   `json:"selected_option"`
	IsCorrect      bool     `json:"is_correct"`
	Marks          int      `json:"marks"`
}

// ExamResultDetail aggregates the latest attempt for display.
type ExamResultDetail struct {
	Exam        ExamResponse        `json:"exam"`
	Responses   []ResultResponseRow `json:"responses"`
	Score       int                 `json:"score"`
	MaxScore    int                 `json:"max_score"`
	Percentage  float64             `json:"percentage"`
	Status      string              `json:"status"`
	Grade       string              `json:"grade"`
	SubmittedAt time.Time           `json:"submitted_at"`
}

// ExamResultResponse wraps the latest result or the explicit no-result state.
type ExamResultResponse struct {
	HasResult bool              `json:"has_result"`
	Result    *ExamResultDetail `json:"result,omitempty"`
}

// NewPaperQuestion converts a Question model into its student-facing shape.
func NewPaperQuestion(model models.Question) PaperQuestion {
	options := model.Options()
	return PaperQuestion{
		ID:      model.ID,
		Text:    model.Text,
		Options: options[:],
		Marks:   model.Marks,
	}
}
