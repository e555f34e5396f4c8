package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dropfixer/dropfixer-api/internal/service"
	"github.com/dropfixer/dropfixer-api/internal/utils"
)

// PredictionHandler wires the risk prediction and explanation endpoints.
type PredictionHandler struct {
	service service.PredictionService
	logger  zerolog.Logger
}

// NewPredictionHandler constructs the handler.
func NewPredictionHandler(service service.PredictionService, logger zerolog.Logger) *PredictionHandler {
	return &PredictionHandler{
		service: service,
		logger:  logger.With().Str("component", "prediction_handler").Logger(),
	}
}

// Register attaches prediction routes to the authenticated router group.
func (h *PredictionHandler) Register(router fiber.Router) {
	router.Post("/predict/:studentId", h.predict)
	router.Get("/explain/:studentId", h.explain)
}

func (h *PredictionHandler) predict(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	response, err := h.service.Predict(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Student not found")
		}
		// A wrong or missing risk score is safety-relevant: surface the
		// failure instead of degrading silently.
		requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("prediction failed")
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return utils.SendJSON(c, fiber.StatusOK, response)
}

func (h *PredictionHandler) explain(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	response, err := h.service.Explain(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("explanation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return utils.SendJSON(c, fiber.StatusOK, response)
}
