package service

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/repository"
)

// ActivityActor identifies the authenticated user performing an action.
type ActivityActor struct {
	ID   uint
	Role models.Role
}

// ActivityEntry describes one auditable event.
type ActivityEntry struct {
	ActorID  uint
	Role     models.Role
	Action   string
	EntityID *uint
	Metadata map[string]interface{}
}

// ActivityRecorder persists audit trail entries. Recording failures are
// logged, never surfaced to the caller's workflow.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry)
}

type activityService struct {
	repo   repository.ActivityLogRepository
	logger zerolog.Logger
}

// NewActivityService constructs the audit recorder.
func NewActivityService(repo repository.ActivityLogRepository, logger zerolog.Logger) ActivityRecorder {
	return &activityService{
		repo:   repo,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) {
	log := models.ActivityLog{
		ActorID:   entry.ActorID,
		ActorRole: entry.Role,
		Action:    entry.Action,
		EntityID:  entry.EntityID,
		Metadata:  datatypes.JSONMap(entry.Metadata),
	}

	if err := s.repo.Create(ctx, &log); err != nil {
		s.logger.Warn().Err(err).Str("action", entry.Action).Msg("failed to record activity")
	}
}
