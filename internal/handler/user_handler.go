package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/middleware"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/service"
	"github.com/sakib-arifin/exam-portal-api/internal/utils"
)

// UserHandler wires profile and managed-account HTTP routes.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// RegisterProfile attaches the self-service profile endpoints.
func (h *UserHandler) RegisterProfile(router fiber.Router) {
	router.Get("", h.getProfile)
	router.Put("", h.updateProfile)
}

// RegisterStudents attaches the student management endpoints.
func (h *UserHandler) RegisterStudents(router fiber.Router) {
	h.registerManaged(router, models.RoleStudent)
}

// RegisterTeachers attaches the teacher management endpoints.
func (h *UserHandler) RegisterTeachers(router fiber.Router) {
	h.registerManaged(router, models.RoleTeacher)
}

func (h *UserHandler) registerManaged(router fiber.Router, role models.Role) {
	router.Get("", h.listManaged(role))
	router.Post("", h.createManaged(role))
	router.Get("/:id", h.getManaged(role))
	router.Put("/:id", h.updateManaged(role))
	router.Delete("/:id", h.deleteManaged(role))
}

func (h *UserHandler) getProfile(c *fiber.Ctx) error {
	profile, err := h.service.GetProfile(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *UserHandler) updateProfile(c *fiber.Ctx) error {
	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := h.service.UpdateProfile(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile updated", updated)
}

func (h *UserHandler) listManaged(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := h.service.ListByRole(c.UserContext(), role)
		if err != nil {
			return h.handleError(c, err)
		}

		return utils.SendSuccess(c, role.String()+"s retrieved", users)
	}
}

func (h *UserHandler) createManaged(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload dto.SignupRequest
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
		}

		created, err := h.service.CreateWithRole(c.UserContext(), payload, role)
		if err != nil {
			return h.handleError(c, err)
		}

		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, role.String()+" created", created)
	}
}

func (h *UserHandler) getManaged(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseUintParam(c, "id")
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}

		user, err := h.service.GetManaged(c.UserContext(), id, role)
		if err != nil {
			return h.handleError(c, err)
		}

		return utils.SendSuccess(c, role.String()+" retrieved", user)
	}
}

func (h *UserHandler) updateManaged(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseUintParam(c, "id")
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}

		var payload dto.ProfileUpdateRequest
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
		}

		updated, err := h.service.UpdateManaged(c.UserContext(), id, role, payload)
		if err != nil {
			return h.handleError(c, err)
		}

		return utils.SendSuccess(c, role.String()+" updated", updated)
	}
}

func (h *UserHandler) deleteManaged(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseUintParam(c, "id")
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}

		if err := h.service.DeleteManaged(c.UserContext(), id, role); err != nil {
			return h.handleError(c, err)
		}

		return utils.SendSuccess(c, role.String()+" deleted", fiber.Map{"id": id})
	}
}

func (h *UserHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrUsernameTaken):
		return utils.SendError(c, fiber.StatusConflict, "username already taken")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Str("correlation_id", middleware.GetCorrelationID(c)).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
