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

// AssignmentHandler wires the exam assignment HTTP routes.
type AssignmentHandler struct {
	service   service.AssignmentService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service service.AssignmentService, validate *validator.Validate, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches the teacher-facing assignment endpoints, nested under an
// owned exam.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Get("", h.listForExam)
	router.Post("", h.assign)
	router.Delete("/:id", h.unassign)
}

// RegisterMine attaches the student's own assignment listing.
func (h *AssignmentHandler) RegisterMine(router fiber.Router) {
	router.Get("", h.listMine)
}

func (h *AssignmentHandler) listForExam(c *fiber.Ctx) error {
	examID, err := parseUintParam(c, "examID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignments, err := h.service.ListForExam(c.UserContext(), examID, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) assign(c *fiber.Ctx) error {
	examID, err := parseUintParam(c, "examID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	created, err := h.service.Assign(c.UserContext(), examID, payload.StudentID, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exam assigned", created)
}

func (h *AssignmentHandler) unassign(c *fiber.Ctx) error {
	examID, err := parseUintParam(c, "examID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Unassign(c.UserContext(), examID, id, actorFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "exam unassigned", fiber.Map{"id": id})
}

func (h *AssignmentHandler) listMine(c *fiber.Ctx) error {
	assignments, err := h.service.ListForStudent(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrAssignmentExists):
		return utils.SendError(c, fiber.StatusConflict, "exam already assigned to student")
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
	case errors.Is(err, service.ErrExamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "exam not found")
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrNotExamOwner):
		return utils.SendError(c, fiber.StatusForbidden, "exam belongs to another creator")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
