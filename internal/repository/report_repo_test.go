package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

func seedStudent(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         models.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedResponse(t *testing.T, db *gorm.DB, studentID, examID, questionID uint, correct bool, adjusted *int) {
	t.Helper()
	response := models.Response{
		StudentID:      studentID,
		ExamID:         examID,
		QuestionID:     questionID,
		SelectedOption: "a",
		IsCorrect:      correct,
		AnsweredAt:     time.Now(),
		ManuallyGraded: adjusted != nil,
		AdjustedMarks:  adjusted,
	}
	require.NoError(t, db.Create(&response).Error)
}

func TestStudentScoresSumsCorrectAndAdjusted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	exam, questions := seedExamWithQuestions(t, db, 5, 2)
	alice := seedStudent(t, db, "alice")
	bob := seedStudent(t, db, "bob")

	// Alice: both correct, one response carries a manual adjustment.
	three := 3
	seedResponse(t, db, alice.ID, exam.ID, questions[0].ID, true, nil)
	seedResponse(t, db, alice.ID, exam.ID, questions[1].ID, true, &three)

	// Bob: one correct, no adjustments anywhere.
	seedResponse(t, db, bob.ID, exam.ID, questions[0].ID, true, nil)
	seedResponse(t, db, bob.ID, exam.ID, questions[1].ID, false, nil)

	rows, err := repo.StudentScores(ctx, exam.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "alice", rows[0].Username)
	require.Equal(t, alice.ID, rows[0].StudentID)
	require.Equal(t, 2, rows[0].TotalCorrect)
	require.Equal(t, 3, rows[0].AdjustedTotal)

	require.Equal(t, "bob", rows[1].Username)
	require.Equal(t, 1, rows[1].TotalCorrect)
	require.Equal(t, 0, rows[1].AdjustedTotal, "all-NULL adjusted marks coalesce to zero")
}

func TestQuestionStatsIncludesUnattemptedQuestions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	exam, questions := seedExamWithQuestions(t, db, 5, 3)
	alice := seedStudent(t, db, "alice")
	bob := seedStudent(t, db, "bob")

	seedResponse(t, db, alice.ID, exam.ID, questions[0].ID, true, nil)
	seedResponse(t, db, bob.ID, exam.ID, questions[0].ID, false, nil)
	seedResponse(t, db, alice.ID, exam.ID, questions[1].ID, true, nil)
	// questions[2] receives no responses at all.

	rows, err := repo.QuestionStats(ctx, exam.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, questions[0].ID, rows[0].QuestionID)
	require.Equal(t, 2, rows[0].Attempts)
	require.Equal(t, 1, rows[0].CorrectCount)

	require.Equal(t, questions[1].ID, rows[1].QuestionID)
	require.Equal(t, 1, rows[1].Attempts)
	require.Equal(t, 1, rows[1].CorrectCount)

	require.Equal(t, questions[2].ID, rows[2].QuestionID)
	require.Equal(t, 0, rows[2].Attempts, "unattempted question still listed")
	require.Equal(t, 0, rows[2].CorrectCount)
}

func TestQuestionStatsScopedToExam(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	exam, _ := seedExamWithQuestions(t, db, 5, 1)
	other, otherQuestions := seedExamWithQuestions(t, db, 5, 2)
	alice := seedStudent(t, db, "alice")
	seedResponse(t, db, alice.ID, other.ID, otherQuestions[0].ID, true, nil)

	rows, err := repo.QuestionStats(ctx, exam.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 0, rows[0].Attempts)
}

func TestDistinctStudentsCountsEachStudentOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	exam, questions := seedExamWithQuestions(t, db, 5, 2)
	alice := seedStudent(t, db, "alice")
	bob := seedStudent(t, db, "bob")

	seedResponse(t, db, alice.ID, exam.ID, questions[0].ID, true, nil)
	seedResponse(t, db, alice.ID, exam.ID, questions[1].ID, false, nil)
	seedResponse(t, db, bob.ID, exam.ID, questions[0].ID, true, nil)

	count, err := repo.DistinctStudents(ctx, exam.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = repo.DistinctStudents(ctx, exam.ID+100)
	require.NoError(t, err)
	require.Zero(t, count)
}
