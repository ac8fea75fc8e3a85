package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
	"github.com/shellist/backend/internal/transport/http/dto"
)

type SettingsHandler struct {
	service ports.SettingsService
	logger  *logger.Logger
}

func NewSettingsHandler(service ports.SettingsService, logger *logger.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, logger: logger}
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.service.GetSettings(c.Context(), c.Params("userId"))
	if err != nil {
		h.logger.Errorw("settings_get_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(settings)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req domain.UserSettings
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}
	req.UserID = c.Params("userId")

	if err := h.service.UpdateSettings(c.Context(), &req); err != nil {
		h.logger.Errorw("settings_update_failed", "user_id", req.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(req)
}
