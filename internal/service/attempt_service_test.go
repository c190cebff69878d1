package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

type attemptFixture struct {
	service   *attemptService
	exams     *memExamRepo
	questions *memQuestionRepo
	attempts  *memAttemptRepo
	sessions  *memSessionRepo
	activity  *capturedActivity
}

func newAttemptFixture(t *testing.T) *attemptFixture {
	t.Helper()

	exams := newMemExamRepo()
	questions := newMemQuestionRepo()
	attempts := newMemAttemptRepo(questions)
	sessions := newMemSessionRepo()
	activity := &capturedActivity{}

	svc := NewAttemptService(attempts, exams, questions, sessions, activity, zerolog.Nop()).(*attemptService)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	return &attemptFixture{
		service:   svc,
		exams:     exams,
		questions: questions,
		attempts:  attempts,
		sessions:  sessions,
		activity:  activity,
	}
}

func (f *attemptFixture) seedExam(t *testing.T, marksPerQuestion, passingMarks int, correct ...string) models.Exam {
	t.Helper()

	exam := models.Exam{
		Title:            "Geography Basics",
		DurationMinutes:  30,
		MarksPerQuestion: marksPerQuestion,
		PassingMarks:     passingMarks,
		CreatedBy:        1,
	}
	require.NoError(t, f.exams.Create(context.Background(), &exam))

	for _, answer := range correct {
		question := models.Question{
			ExamID:        exam.ID,
			Text:          "question",
			Option1:       answer,
			Option2:       "wrong a",
			Option3:       "wrong b",
			Option4:       "wrong c",
			CorrectOption: 0,
			Marks:         marksPerQuestion,
		}
		require.NoError(t, f.questions.Create(context.Background(), &question))
	}

	return exam
}

func TestSubmitAllCorrectPasses(t *testing.T) {
	f := newAttemptFixture(t)
	exam := f.seedExam(t, 5, 10, "Paris", "Berlin", "Madrid")
	student := ActivityActor{ID: 7, Role: models.RoleStudent}

	questions, err := f.questions.ListByExam(context.Background(), exam.ID)
	require.NoError(t, err)

	outcome, err := f.service.Submit(context.Background(), exam.ID, student, dto.AttemptSubmitRequest{
		Answers: map[uint]string{
			questions[0].ID: "  paris ",
			questions[1].ID: "BERLIN",
			questions[2].ID: "Madrid",
		},
	})
	require.NoError(t, err)

	require.True(t, outcome.Passed)
	require.Equal(t, 15, outcome.Score)
	require.Equal(t, 15, outcome.MaxScore)
	require.Equal(t, 100.0, outcome.Percentage)
	require.Contains(t, outcome.Message, "passed")
}

func TestSubmitNoAnswersRecordsNotAnswered(t *testing.T) {
	f := newAttemptFixture(t)
	exam := f.seedExam(t, 5, 10, "Paris", "Berlin")
	student := ActivityActor{ID: 7, Role: models.RoleStudent}

	outcome, err := f.service.Submit(context.Background(), exam.ID, student, dto.AttemptSubmitRequest{})
	require.NoError(t, err)

	require.False(t, outcome.Passed)
	require.Equal(t, 0, outcome.Score)
	require.Equal(t, 10, outcome.MaxScore)
	require.Equal(t, 0.0, outcome.Percentage)

	attempt, err := f.attempts.LatestByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	responses, err := f.attempts.ResponsesForAttempt(context.Background(), attempt.ID)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	for _, response := range responses {
		require.Equal(t, models.NotAnswered, response.SelectedOption)
		require.False(t, response.IsCorrect)
	}
}

func TestSubmitStoresTrimmedOriginalCase(t *testing.T) {
	f := newAttemptFixture(t)
	exam := f.seedExam(t, 5, 5, "paris")
	student := ActivityActor{ID: 7, Role: models.RoleStudent}

	questions, err := f.questions.ListByExam(context.Background(), exam.ID)
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), exam.ID, student, dto.AttemptSubmitRequest{
		Answers: map[uint]string{questions[0].ID: "  Paris "},
	})
	require.NoError(t, err)

	attempt, err := f.attempts.LatestByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	responses, err := f.attempts.ResponsesForAttempt(context.Background(), attempt.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	require.Equal(t, "Paris", responses[0].SelectedOption)
	require.True(t, responses[0].IsCorrect)
}

func TestSubmitReplacesPriorAttempt(t *testing.T) {
	f := newAttemptFixture(t)
	exam := f.seedExam(t, 5, 5, "Paris", "Berlin")
	student := ActivityActor{ID: 7, Role: models.RoleStudent}

	questions, err := f.questions.ListByExam(context.Background(), exam.ID)
	require.NoError(t, err)

	first, err := f.service.Submit(context.Background(), exam.ID, student, dto.AttemptSubmitRequest{
		Answers: map[uint]string{questions[0].ID: "Paris"},
	})
	require.NoError(t, err)
	require.Equal(t, 5, first.Score)

	second, err := f.service.Submit(context.Background(), exam.ID, student, dto.AttemptSubmitRequest{
		Answers: map[uint]string{
			questions[0].ID: "Paris",
			questions[1].ID: "Berlin",
		},
	})
	require.NoError(t, err)
	require.Equal(t, 10, second.Score)

	require.Len(t, f.attempts.attempts, 1)
	attempt, err := f.attempts.LatestByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Equal(t, 10, attempt.Score)

	responses, err := f.attempts.ResponsesForAttempt(context.Background(), attempt.ID)
	require.NoError(t, err)
	require.Len(t, responses, 2)
}

func TestSubmitBelowPassingMarksFails(t *testing.T) {
	f := newAttemptFixture(t)
	exam := f.seedExam(t, 15, 22, "Paris", "Berlin")
	student := ActivityActor{ID: 7, Role: models.RoleStudent}

	questions, err := f.questions.ListByExam(context.Background(), exam.ID)
	require.NoError(t, err)

	outcome, err := f.service.Submit(context.Background(), exam.ID, student, dto.AttemptSubmitRequest{
		Answers: map[uint]string{
			questions[0].ID: "Paris",
			questions[1].ID: "Oslo",
		},
	})
	require.NoError(t, err)

	require.False(t, outcome.Passed)
	require.Equal(t, 15, outcome.Score)
	require.Equal(t, 30, outcome.MaxScore)
	require.Equal(t, 50.0, outcome.Percentage)
	require.Contains(t, outcome.Message, "failed")
}

func TestSubmitZeroQuestionExam(t *testing.T) {
	f := newAttemptFixture(t)
	exam := f.seedExam(t, 5, 22)
	student := ActivityActor{ID: 7, Role: models.RoleStudent}

	outcome, err := f.service.Submit(context.Background(), exam.ID, student, dto.AttemptSubmitRequest{})
	require.NoError(t, err)

	require.False(t, outcome.Passed)
	require.Equal(t, 0, outcome.Score)
	require.Equal(t, 0, outcome.MaxScore)
	require.Equal(t, 0.0, outcome.Percentage)
}

func TestSubmitUnknownExam(t *testing.T) {
	f := newAttemptFixture(t)
	student := ActivityActor{ID: 7, Role: models.RoleStudent}

	_, err := f.service.Submit(context.Background(), 404, student, dto.AttemptSubmitRequest{})
	require.ErrorIs(t, err, ErrExamNotFound)
}

func TestSubmitMarksSessionCompleted(t *testing.T) {
	f := newAttemptFixture(t)
	exam := f.seedExam(t, 5, 5, "Paris")
	student := ActivityActor{ID: 7, Role: models.RoleStudent}

	_, err := f.service.Begin(context.Background(), exam.ID, student)
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), exam.ID, student, dto.AttemptSubmitRequest{})
	require.NoError(t, err)

	require.True(t, f.sessions.completed[attemptKey{studentID: student.ID, examID: exam.ID}])
	require.Len(t, f.activity.entries, 1)
	require.Equal(t, "attempt.submitted", f.activity.entries[0].Action)
}

func TestBeginReturnsPaperWithDeadline(t *testing.T) {
	f := newAttemptFixture(t)
	exam := f.seedExam(t, 5, 10, "Paris", "Berlin")
	student := ActivityActor{ID: 7, Role: models.RoleStudent}

	paper, err := f.service.Begin(context.Background(), exam.ID, student)
	require.NoError(t, err)

	require.Equal(t, exam.ID, paper.Exam.ID)
	require.Len(t, paper.Questions, 2)
	require.Equal(t, paper.StartedAt.Add(30*time.Minute), paper.Deadline)
	require.Equal(t, 30*60, paper.RemainingSeconds)

	for _, question := range paper.Questions {
		require.Len(t, question.Options, 4)
	}
}

func TestBeginReusesExistingSession(t *testing.T) {
	f := newAttemptFixture(t)
	exam := f.seedExam(t, 5, 10, "Paris")
	student := ActivityActor{ID: 7, Role: models.RoleStudent}

	first, err := f.service.Begin(context.Background(), exam.ID, student)
	require.NoError(t, err)

	f.service.now = func() time.Time { return first.StartedAt.Add(10 * time.Minute) }

	second, err := f.service.Begin(context.Background(), exam.ID, student)
	require.NoError(t, err)
	require.Equal(t, first.StartedAt, second.StartedAt)
	require.Equal(t, 20*60, second.RemainingSeconds)
}

func TestLatestResultNoAttempts(t *testing.T) {
	f := newAttemptFixture(t)

	result, err := f.service.LatestResult(context.Background(), 7)
	require.NoError(t, err)
	require.False(t, result.HasResult)
	require.Nil(t, result.Result)
}

func TestLatestResultRecomputesFromResponses(t *testing.T) {
	f := newAttemptFixture(t)
	exam := f.seedExam(t, 5, 10, "Paris", "Berlin", "Madrid", "Rome")
	student := ActivityActor{ID: 7, Role: models.RoleStudent}

	questions, err := f.questions.ListByExam(context.Background(), exam.ID)
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), exam.ID, student, dto.AttemptSubmitRequest{
		Answers: map[uint]string{
			questions[0].ID: "Paris",
			questions[1].ID: "Berlin",
			questions[2].ID: "Lisbon",
		},
	})
	require.NoError(t, err)

	result, err := f.service.LatestResult(context.Background(), student.ID)
	require.NoError(t, err)
	require.True(t, result.HasResult)
	require.NotNil(t, result.Result)

	detail := result.Result
	require.Equal(t, 10, detail.Score)
	require.Equal(t, 20, detail.MaxScore)
	require.Equal(t, 50.0, detail.Percentage)
	require.Equal(t, "Pass", detail.Status)
	require.Equal(t, "D", detail.Grade)
	require.Len(t, detail.Responses, 4)

	require.Equal(t, "Lisbon", detail.Responses[2].SelectedOption)
	require.False(t, detail.Responses[2].IsCorrect)
	require.Equal(t, models.NotAnswered, detail.Responses[3].SelectedOption)
}

func TestLatestResultSpansExams(t *testing.T) {
	f := newAttemptFixture(t)
	first := f.seedExam(t, 5, 5, "Paris")
	second := f.seedExam(t, 5, 5, "Berlin")
	student := ActivityActor{ID: 7, Role: models.RoleStudent}

	firstQuestions, err := f.questions.ListByExam(context.Background(), first.ID)
	require.NoError(t, err)
	_, err = f.service.Submit(context.Background(), first.ID, student, dto.AttemptSubmitRequest{
		Answers: map[uint]string{firstQuestions[0].ID: "Paris"},
	})
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), second.ID, student, dto.AttemptSubmitRequest{})
	require.NoError(t, err)

	result, err := f.service.LatestResult(context.Background(), student.ID)
	require.NoError(t, err)
	require.True(t, result.HasResult)
	require.Equal(t, second.ID, result.Result.Exam.ID)
	require.Equal(t, "Fail", result.Result.Status)
}
