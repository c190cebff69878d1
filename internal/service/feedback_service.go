package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/observability"
	"github.com/sakib-arifin/exam-portal-api/internal/repository"
)

// ErrFeedbackSpam indicates the honeypot field was filled in.
var ErrFeedbackSpam = errors.New("feedback rejected as spam")

// ErrFeedbackDuplicate indicates an identical submission inside the dedupe window.
var ErrFeedbackDuplicate = errors.New("duplicate feedback submission")

// FeedbackService accepts public contact-form submissions.
type FeedbackService interface {
	Submit(ctx context.Context, payload dto.FeedbackRequest) (dto.FeedbackResponse, error)
	List(ctx context.Context) ([]models.Feedback, error)
}

type feedbackService struct {
	feedback  repository.FeedbackRepository
	cache     *redis.Client
	dedupeTTL time.Duration
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewFeedbackService constructs a FeedbackService instance. The cache client
// may be nil, which disables duplicate suppression.
func NewFeedbackService(
	feedback repository.FeedbackRepository,
	cache *redis.Client,
	dedupeTTL time.Duration,
	validate *validator.Validate,
	logger zerolog.Logger,
) FeedbackService {
	return &feedbackService{
		feedback:  feedback,
		cache:     cache,
		dedupeTTL: dedupeTTL,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "feedback_service").Logger(),
	}
}

func (s *feedbackService) Submit(ctx context.Context, payload dto.FeedbackRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	if strings.TrimSpace(payload.Honeypot) != "" {
		observability.FeedbackSubmissions().WithLabelValues("spam").Inc()
		return dto.FeedbackResponse{}, ErrFeedbackSpam
	}

	record := models.Feedback{
		Name:    s.sanitizer.Sanitize(strings.TrimSpace(payload.Name)),
		Email:   strings.TrimSpace(payload.Email),
		Subject: s.sanitizer.Sanitize(strings.TrimSpace(payload.Subject)),
		Message: s.sanitizer.Sanitize(strings.TrimSpace(payload.Message)),
	}

	if s.cache != nil {
		key := "feedback:dedupe:" + checksumFeedback(record)
		stored, err := s.cache.SetNX(ctx, key, 1, s.dedupeTTL).Result()
		if err != nil {
			s.logger.Warn().Err(err).Msg("feedback dedupe check failed")
		} else if !stored {
			observability.FeedbackSubmissions().WithLabelValues("duplicate").Inc()
			return dto.FeedbackResponse{}, ErrFeedbackDuplicate
		}
	}

	if err := s.feedback.Create(ctx, &record); err != nil {
		return dto.FeedbackResponse{}, err
	}

	observability.FeedbackSubmissions().WithLabelValues("accepted").Inc()
	s.logger.Info().Uint("feedback_id", record.ID).Msg("feedback stored")

	return dto.NewFeedbackResponse(record), nil
}

func (s *feedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	return s.feedback.List(ctx)
}

func checksumFeedback(record models.Feedback) string {
	sum := sha256.Sum256([]byte(record.Email + "|" + record.Subject + "|" + record.Message))
	return hex.EncodeToString(sum[:])
}
