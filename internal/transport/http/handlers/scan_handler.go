package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/infrastructure/logger"
	"github.com/shellist/backend/internal/transport/http/dto"
)

type ScanHandler struct {
	scanner ports.ScannerService
	logger  *logger.Logger
}

func NewScanHandler(scanner ports.ScannerService, logger *logger.Logger) *ScanHandler {
	return &ScanHandler{scanner: scanner, logger: logger}
}

// RunScan forces a deadline scan outside the ticker schedule. The scanner
// serializes invocations internally, so a manual run never overlaps one
// already in flight.
func (h *ScanHandler) RunScan(c *fiber.Ctx) error {
	result, err := h.scanner.RunScan(c.Context(), time.Now())
	if err != nil {
		h.logger.Errorw("scan_trigger_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(result)
}
