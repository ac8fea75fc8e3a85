package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/core/services"
	"github.com/shellist/backend/internal/infrastructure/logger"
	"github.com/shellist/backend/internal/transport/http/dto"
)

type FollowHandler struct {
	service ports.FollowService
	logger  *logger.Logger
}

func NewFollowHandler(service ports.FollowService, logger *logger.Logger) *FollowHandler {
	return &FollowHandler{service: service, logger: logger}
}

type followRequest struct {
	FollowerID  string `json:"follower_id"`
	FollowingID string `json:"following_id"`
}

func (h *FollowHandler) FollowUser(c *fiber.Ctx) error {
	var req followRequest
	if err := c.BodyParser(&req); err != nil || req.FollowerID == "" || req.FollowingID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "follower_id and following_id are required",
		})
	}

	if err := h.service.FollowUser(c.Context(), req.FollowerID, req.FollowingID); err != nil {
		if errors.Is(err, services.ErrFollowSelf) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Errorw("follow_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FollowHandler) UnfollowUser(c *fiber.Ctx) error {
	var req followRequest
	if err := c.BodyParser(&req); err != nil || req.FollowerID == "" || req.FollowingID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "follower_id and following_id are required",
		})
	}

	if err := h.service.UnfollowUser(c.Context(), req.FollowerID, req.FollowingID); err != nil {
		if errors.Is(err, services.ErrFollowNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Errorw("unfollow_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FollowHandler) IsFollowing(c *fiber.Ctx) error {
	followerID := c.Query("follower_id")
	followingID := c.Query("following_id")
	if followerID == "" || followingID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "follower_id and following_id are required",
		})
	}

	following, err := h.service.IsFollowing(c.Context(), followerID, followingID)
	if err != nil {
		h.logger.Errorw("follow_status_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(fiber.Map{"following": following})
}

func (h *FollowHandler) GetFollowers(c *fiber.Ctx) error {
	ids, err := h.service.GetFollowers(c.Context(), c.Params("id"))
	if err != nil {
		h.logger.Errorw("followers_list_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(fiber.Map{"followers": ids})
}

func (h *FollowHandler) GetFollowing(c *fiber.Ctx) error {
	ids, err := h.service.GetFollowing(c.Context(), c.Params("id"))
	if err != nil {
		h.logger.Errorw("following_list_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(fiber.Map{"following": ids})
}

func (h *FollowHandler) GetFollowStats(c *fiber.Ctx) error {
	followers, following, err := h.service.GetFollowStats(c.Context(), c.Params("id"))
	if err != nil {
		h.logger.Errorw("follow_stats_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dto.FollowStatsResponse{Followers: followers, Following: following})
}
