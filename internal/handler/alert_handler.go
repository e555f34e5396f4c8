package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dropfixer/dropfixer-api/internal/service"
	"github.com/dropfixer/dropfixer-api/internal/utils"
)

// AlertHandler wires the staff-facing alert endpoints.
type AlertHandler struct {
	service service.AlertService
	logger  zerolog.Logger
}

// NewAlertHandler constructs the handler.
func NewAlertHandler(service service.AlertService, logger zerolog.Logger) *AlertHandler {
	return &AlertHandler{
		service: service,
		logger:  logger.With().Str("component", "alert_handler").Logger(),
	}
}

// Register attaches alert routes to the privileged router group.
func (h *AlertHandler) Register(router fiber.Router) {
	router.Get("/alerts", h.list)
	router.Post("/alerts/:alertId/acknowledge", h.acknowledge)
}

func (h *AlertHandler) list(c *fiber.Ctx) error {
	alerts, err := h.service.ListRecent(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list alerts")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list alerts")
	}

	return utils.SendJSON(c, fiber.StatusOK, alerts)
}

func (h *AlertHandler) acknowledge(c *fiber.Ctx) error {
	alertID, err := parseUintParam(c, "alertId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid alert id")
	}

	alreadyDone, err := h.service.Acknowledge(c.Context(), alertID)
	if err != nil {
		if errors.Is(err, service.ErrAlertNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Alert not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("alert_id", alertID).Msg("failed to acknowledge alert")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to acknowledge alert")
	}

	message := "Alert acknowledged"
	if alreadyDone {
		message = "Alert already acknowledged"
	}

	return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"message": message})
}
