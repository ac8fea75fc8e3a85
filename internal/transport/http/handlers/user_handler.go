package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/core/services"
	"github.com/shellist/backend/internal/infrastructure/logger"
	"github.com/shellist/backend/internal/transport/http/dto"
)

type UserHandler struct {
	service ports.UserService
	logger  *logger.Logger
}

func NewUserHandler(service ports.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.service.GetUserByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "user not found",
		})
	}
	return c.JSON(dto.UserToResponse(user))
}

func (h *UserHandler) GetUserByUsername(c *fiber.Ctx) error {
	user, err := h.service.GetUserByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "user not found",
		})
	}
	return c.JSON(dto.UserToResponse(user))
}

func (h *UserHandler) CheckUsername(c *fiber.Ctx) error {
	available, err := h.service.IsUsernameAvailable(c.Context(), c.Params("username"))
	if err != nil {
		if errors.Is(err, services.ErrUsernameInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		h.logger.Errorw("username_check_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(fiber.Map{"available": available})
}

func (h *UserHandler) UpdateUsername(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	err := h.service.UpdateUsername(c.Context(), c.Params("id"), req.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Errorw("username_update_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		DisplayName *string `json:"display_name"`
		Bio         *string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	err := h.service.UpdateProfile(c.Context(), c.Params("id"), ports.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Errorw("profile_update_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) SearchUsers(c *fiber.Ctx) error {
	users, err := h.service.SearchUsers(c.Context(), c.Query("q"))
	if err != nil {
		h.logger.Errorw("user_search_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dto.UsersToResponse(users))
}
