package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

type feedbackRepoStub struct {
	created []models.Feedback
}

func (r *feedbackRepoStub) Create(_ context.Context, feedback *models.Feedback) error {
	feedback.ID = uint(len(r.created) + 1)
	r.created = append(r.created, *feedback)
	return nil
}

func (r *feedbackRepoStub) List(_ context.Context) ([]models.Feedback, error) {
	return r.created, nil
}

func feedbackPayload() dto.FeedbackRequest {
	return dto.FeedbackRequest{
		Name:    "Nadia",
		Email:   "nadia@example.com",
		Subject: "Exam portal",
		Message: "The results page is very helpful.",
	}
}

func TestFeedbackSubmitStoresRecord(t *testing.T) {
	repo := &feedbackRepoStub{}
	svc := NewFeedbackService(repo, nil, time.Minute, validator.New(), testLogger())

	resp, err := svc.Submit(context.Background(), feedbackPayload())
	require.NoError(t, err)
	require.NotZero(t, resp.ID)
	require.Len(t, repo.created, 1)
	require.Equal(t, "Nadia", repo.created[0].Name)
}

func TestFeedbackSubmitHoneypot(t *testing.T) {
	repo := &feedbackRepoStub{}
	svc := NewFeedbackService(repo, nil, time.Minute, validator.New(), testLogger())

	payload := feedbackPayload()
	payload.Honeypot = "http://spam.example.com"

	_, err := svc.Submit(context.Background(), payload)
	require.ErrorIs(t, err, ErrFeedbackSpam)
	require.Empty(t, repo.created)
}

func TestFeedbackSubmitSanitizesMarkup(t *testing.T) {
	repo := &feedbackRepoStub{}
	svc := NewFeedbackService(repo, nil, time.Minute, validator.New(), testLogger())

	payload := feedbackPayload()
	payload.Message = "<script>alert(1)</script>The portal works well."

	_, err := svc.Submit(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, "The portal works well.", repo.created[0].Message)
}

func TestFeedbackSubmitDuplicate(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	defer redisClient.Close()

	repo := &feedbackRepoStub{}
	svc := NewFeedbackService(repo, redisClient, time.Minute, validator.New(), testLogger())

	_, err = svc.Submit(context.Background(), feedbackPayload())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), feedbackPayload())
	require.ErrorIs(t, err, ErrFeedbackDuplicate)
	require.Len(t, repo.created, 1)

	mini.FastForward(2 * time.Minute)

	_, err = svc.Submit(context.Background(), feedbackPayload())
	require.NoError(t, err)
}

func TestFeedbackSubmitInvalidPayload(t *testing.T) {
	svc := NewFeedbackService(&feedbackRepoStub{}, nil, time.Minute, validator.New(), testLogger())

	payload := feedbackPayload()
	payload.Email = "not-an-email"

	_, err := svc.Submit(context.Background(), payload)
	require.Error(t, err)
}
