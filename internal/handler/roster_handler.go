package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dropfixer/dropfixer-api/internal/service"
	"github.com/dropfixer/dropfixer-api/internal/utils"
)

// RosterHandler serves the staff student roster.
type RosterHandler struct {
	service service.RosterService
	logger  zerolog.Logger
}

// NewRosterHandler constructs the handler.
func NewRosterHandler(service service.RosterService, logger zerolog.Logger) *RosterHandler {
	return &RosterHandler{
		service: service,
		logger:  logger.With().Str("component", "roster_handler").Logger(),
	}
}

// Register attaches roster routes to the privileged router group.
func (h *RosterHandler) Register(router fiber.Router) {
	router.Get("/students", h.list)
}

func (h *RosterHandler) list(c *fiber.Ctx) error {
	entries, err := h.service.ListStudents(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build student roster")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list students")
	}

	return utils.SendJSON(c, fiber.StatusOK, entries)
}
