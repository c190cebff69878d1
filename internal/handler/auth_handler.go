package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sakib-arifin/exam-portal-api/internal/dto"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/service"
	"github.com/sakib-arifin/exam-portal-api/internal/utils"
)

// AuthHandler wires the signup and login HTTP routes.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches auth endpoints to the router group. The endpoint decides
// the role; the payload never carries one.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/signup", h.signup(models.RoleStudent))
	router.Post("/signup/teacher", h.signup(models.RoleTeacher))
	router.Post("/signup/admin", h.signup(models.RoleAdmin))
	router.Post("/login", h.login)
}

func (h *AuthHandler) signup(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload dto.SignupRequest
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
		}

		created, err := h.service.Signup(c.UserContext(), payload, role)
		if err != nil {
			return h.handleError(c, err)
		}

		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", created)
	}
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "login successful", resp)
}

func (h *AuthHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		return utils.SendError(c, fiber.StatusConflict, "username already taken")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
