package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dropfixer/dropfixer-api/internal/dto"
	"github.com/dropfixer/dropfixer-api/internal/service"
	"github.com/dropfixer/dropfixer-api/internal/utils"
)

// ChatHandler wires the counselling chat endpoint. Chat never surfaces an
// error status: whatever goes wrong, the caller receives a usable localized
// reply plus a diagnostic flag.
type ChatHandler struct {
	service   service.ChatService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(service service.ChatService, validate *validator.Validate, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "chat_handler").Logger(),
	}
}

// Register attaches the chat route to the authenticated router group.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Post("/chat", h.chat)
}

func (h *ChatHandler) chat(c *fiber.Ctx) error {
	var payload dto.ChatRequest
	if err := c.BodyParser(&payload); err != nil {
		payload = dto.ChatRequest{}
	}

	if err := h.validator.Struct(payload); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("invalid chat payload, answering with apology")
		return utils.SendJSON(c, fiber.StatusOK, dto.ChatResponse{
			Response:  service.Apology(payload.Language),
			Language:  service.NormalizeLanguage(payload.Language),
			Timestamp: time.Now().UTC(),
			AIPowered: false,
			Error:     err.Error(),
		})
	}

	response := h.service.Respond(c.Context(), payload)
	return utils.SendJSON(c, fiber.StatusOK, response)
}
