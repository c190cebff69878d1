package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/service"
	"github.com/sakib-arifin/exam-portal-api/internal/utils"
)

// AttemptHandler wires the exam-taking HTTP routes.
type AttemptHandler struct {
	service service.AttemptService
	logger  zerolog.Logger
}

// NewAttemptHandler constructs the handler.
func NewAttemptHandler(service service.AttemptService, logger zerolog.Logger) *AttemptHandler {
	return &AttemptHandler{
		service: service,
		logger:  logger.With().Str("component", "attempt_handler").Logger(),
	}
}

// Register attaches the exam-taking endpoints. The submit route takes an
// extra rate limiter supplied by the caller.
func (h *AttemptHandler) Register(router fiber.Router, submitLimiter fiber.Handler) {
	router.Get("/exams/:id/take", h.begin)
	if submitLimiter != nil {
		router.Post("/exams/:id/submit", submitLimiter, h.submit)
	} else {
		router.Post("/exams/:id/submit", h.submit)
	}
	router.Get("/results/latest", h.latestResult)
}

func (h *AttemptHandler) begin(c *fiber.Ctx) error {
	examID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	paper, err := h.service.Begin(c.UserContext(), examID, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "exam paper retrieved", paper)
}

func (h *AttemptHandler) submit(c *fiber.Ctx) error {
	examID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AttemptSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	outcome, err := h.service.Submit(c.UserContext(), examID, actorFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, outcome.Message, outcome)
}

func (h *AttemptHandler) latestResult(c *fiber.Ctx) error {
	result, err := h.service.LatestResult(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	message := "result retrieved"
	if !result.HasResult {
		message = "no results yet"
	}

	return utils.SendSuccess(c, message, result)
}

func (h *AttemptHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "exam not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
