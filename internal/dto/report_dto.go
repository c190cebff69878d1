package dto

import "time"

// Progress status labels, preserved as observed in the classification rule:
// answered == total wins over "In Progress", with no upper cap.
const (
	ProgressNotStarted = "Not Started"
	ProgressInProgress = "In Progress"
	ProgressCompleted  = "Completed"
)

// StudentProgress reports one assigned student's progress against an exam.
type StudentProgress struct {
	StudentID uint   `json:"student_id"`
	Username  string `json:"username"`
	Answered  int    `json:"answered"`
	Total     int    `json:"total"`
	Status    string `json:"status"`
}

// ExamProgressResponse aggregates progress for every assigned student.
type ExamProgressResponse struct {
	Exam     ExamResponse      `json:"exam"`
	Progress []StudentProgress `json:"progress"`
}

// StudentScore is one student's aggregate over an exam's responses.
type StudentScore struct {
	StudentID     uint    `json:"student_id"`
	Username      string  `json:"username"`
	TotalCorrect  int     `json:"total_correct"`
	TotalMarks    int     `json:"total_marks"`
	AdjustedTotal int     `json:"adjusted_total"`
	Percentage    float64 `json:"percentage"`
}

// QuestionStats is the per-question attempt/correct aggregate.
type QuestionStats struct {
	QuestionID   uint   `json:"question_id"`
	Text         string `json:"text"`
	Attempts     int    `json:"attempts"`
	CorrectCount int    `json:"correct_count"`
}

// ExamAnalyticsResponse is the teacher-facing analytics view of one exam.
type ExamAnalyticsResponse struct {
	Exam          ExamResponse    `json:"exam"`
	TotalStudents int             `json:"total_students"`
	AverageScore  float64         `json:"average_score"`
	MaxMarks      int             `json:"max_marks"`
	StudentScores []StudentScore  `json:"student_scores"`
	QuestionStats []QuestionStats `json:"question_stats"`
}

// RecentAttempt summarizes one of the student's latest attempts.
type RecentAttempt struct {
	ExamID      uint      `json:"exam_id"`
	ExamTitle   string    `json:"exam_title"`
	Score       int       `json:"score"`
	MaxScore    int       `json:"max_score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// StudentDashboardResponse is the student landing view: available exams
// plus recent attempts.
type StudentDashboardResponse struct {
	Exams          []ExamResponse  `json:"exams"`
	RecentAttempts []RecentAttempt `json:"recent_attempts"`
}

// ResponseOverrideRequest applies a teacher override to one stored response.
type ResponseOverrideRequest struct {
	TeacherComment string `json:"teacher_comment" validate:"omitempty"`
	AdjustedMarks  *int   `json:"adjusted_marks" validate:"omitempty,gte=0"`
}
