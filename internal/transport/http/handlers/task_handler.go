package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/core/services"
	"github.com/shellist/backend/internal/infrastructure/logger"
	"github.com/shellist/backend/internal/transport/http/dto"
)

type TaskHandler struct {
	service         ports.TaskService
	notificationLog ports.NotificationLogRepository
	logger          *logger.Logger
}

func NewTaskHandler(service ports.TaskService, notificationLog ports.NotificationLogRepository, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{service: service, notificationLog: notificationLog, logger: logger}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("task_create_body_parse_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if errs := req.Validate(); len(errs) > 0 {
		h.logger.Warnw("task_create_validation_failed", "details", errs)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	input := ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.GetDate(),
		StartTime:   req.StartTime,
		Duration:    req.Duration,
		Category:    req.Category,
		UserID:      req.UserID,
	}

	task, err := h.service.CreateTask(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrTaskInvalidInput) ||
			errors.Is(err, services.ErrTaskInvalidStartTime) ||
			errors.Is(err, services.ErrTaskInvalidDuration) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		h.logger.Errorw("task_create_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	h.logger.Infow("task_create_success", "id", task.ID, "user_id", task.UserID)
	return c.Status(fiber.StatusCreated).JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) GetTasks(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "user_id query parameter is required",
		})
	}

	tasks, err := h.service.GetTasks(c.Context(), userID)
	if err != nil {
		h.logger.Errorw("tasks_list_failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(dto.TasksToResponse(tasks))
}

func (h *TaskHandler) GetRecentTasks(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "user_id query parameter is required",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	tasks, err := h.service.GetRecentTasks(c.Context(), userID, limit)
	if err != nil {
		h.logger.Errorw("tasks_recent_failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(dto.TasksToResponse(tasks))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	task, err := h.service.GetTaskByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "task not found",
		})
	}
	return c.JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) CompleteTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.CompleteTask(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "task not found",
			})
		}
		if errors.Is(err, services.ErrTaskNotPending) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		h.logger.Errorw("task_complete_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteTask(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "task not found",
			})
		}
		h.logger.Errorw("task_delete_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TaskHandler) GetTaskNotifications(c *fiber.Ctx) error {
	taskID := c.Params("id")
	records, err := h.notificationLog.GetByTask(c.Context(), taskID)
	if err != nil {
		h.logger.Errorw("task_notifications_failed", "id", taskID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(records)
}
