package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/handler"
	"github.com/sakib-arifin/exam-portal-api/internal/service"
)

type mockAttemptService struct {
	paper       dto.ExamPaperResponse
	outcome     dto.AttemptOutcomeResponse
	result      dto.ExamResultResponse
	err         error
	lastExamID  uint
	lastPayload dto.AttemptSubmitRequest
	lastActor   service.ActivityActor
}

func (m *mockAttemptService) Begin(_ context.Context, examID uint, student service.ActivityActor) (dto.ExamPaperResponse, error) {
	m.lastExamID = examID
	m.lastActor = student
	if m.err != nil {
		return dto.ExamPaperResponse{}, m.err
	}
	return m.paper, nil
}

func (m *mockAttemptService) Submit(_ context.Context, examID uint, student service.ActivityActor, payload dto.AttemptSubmitRequest) (dto.AttemptOutcomeResponse, error) {
	m.lastExamID = examID
	m.lastActor = student
	m.lastPayload = payload
	if m.err != nil {
		return dto.AttemptOutcomeResponse{}, m.err
	}
	return m.outcome, nil
}

func (m *mockAttemptService) LatestResult(_ context.Context, _ uint) (dto.ExamResultResponse, error) {
	if m.err != nil {
		return dto.ExamResultResponse{}, m.err
	}
	return m.result, nil
}

func attemptApp(svc service.AttemptService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/my", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		c.Locals("user_role", "student")
		return c.Next()
	})
	handler.NewAttemptHandler(svc, zerolog.New(io.Discard)).Register(group, nil)
	return app
}

func TestAttemptHandler_SubmitSuccess(t *testing.T) {
	svc := &mockAttemptService{outcome: dto.AttemptOutcomeResponse{
		Passed:     true,
		Score:      25,
		MaxScore:   25,
		Percentage: 100,
		Message:    "Exam submitted! You passed with 25/25 marks (100.00%).",
	}}
	app := attemptApp(svc)

	payload := dto.AttemptSubmitRequest{Answers: map[uint]string{1: "Paris", 2: "Mars"}}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/my/exams/3/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                       `json:"success"`
		Data    dto.AttemptOutcomeResponse `json:"data"`
		Message string                     `json:"message"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, svc.outcome.Message, response.Message)
	require.Equal(t, 25, response.Data.Score)
	require.Equal(t, uint(3), svc.lastExamID)
	require.Equal(t, uint(7), svc.lastActor.ID)
	require.Equal(t, "Paris", svc.lastPayload.Answers[1])
}

func TestAttemptHandler_SubmitUnknownExam(t *testing.T) {
	svc := &mockAttemptService{err: service.ErrExamNotFound}
	app := attemptApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/my/exams/99/submit", bytes.NewReader([]byte(`{"answers":{}}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAttemptHandler_SubmitInternalError(t *testing.T) {
	svc := &mockAttemptService{err: errors.New("db down")}
	app := attemptApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/my/exams/3/submit", bytes.NewReader([]byte(`{"answers":{}}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestAttemptHandler_BeginReturnsPaper(t *testing.T) {
	svc := &mockAttemptService{paper: dto.ExamPaperResponse{
		Exam:             dto.ExamResponse{ID: 3, Title: "Geography"},
		Questions:        []dto.PaperQuestion{{ID: 1, Text: "Capital of France?", Options: []string{"Paris", "Rome", "Oslo", "Lima"}, Marks: 5}},
		RemainingSeconds: 1800,
	}}
	app := attemptApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/my/exams/3/take", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                  `json:"success"`
		Data    dto.ExamPaperResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "Geography", response.Data.Exam.Title)
	require.Len(t, response.Data.Questions, 1)
	require.Equal(t, 1800, response.Data.RemainingSeconds)
}

func TestAttemptHandler_BeginBadExamID(t *testing.T) {
	svc := &mockAttemptService{}
	app := attemptApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/my/exams/abc/take", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAttemptHandler_LatestResultEmpty(t *testing.T) {
	svc := &mockAttemptService{result: dto.ExamResultResponse{HasResult: false}}
	app := attemptApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/my/results/latest", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                   `json:"success"`
		Data    dto.ExamResultResponse `json:"data"`
		Message string                 `json:"message"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.False(t, response.Data.HasResult)
	require.Equal(t, "no results yet", response.Message)
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
