package service

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/dropfixer/dropfixer-api/internal/dto"
	"github.com/dropfixer/dropfixer-api/internal/observability"
	"github.com/dropfixer/dropfixer-api/pkg/ai"
)

// fallbackReplies are the canned localized responses used when the
// generative model is unavailable or fails.
var fallbackReplies = map[string]map[string]string{
	"en": {
		"academic": "I understand you're facing academic challenges. Let's work together to identify the specific areas where you need support. Would you like to discuss study techniques or time management?",
		"career":   "Career planning is exciting! What are your interests and strengths? I can help you explore different career paths that align with your goals.",
		"mental":   "Your mental health is important. I'm here to listen and support you. Would you like to talk about stress management techniques or coping strategies?",
		"default":  "I'm here to help with academic, career, or personal concerns. How can I support you today?",
	},
	"hi": {
		"academic": "मैं समझ सकता हूँ कि आप शैक्षणिक चुनौतियों का सामना कर रहे हैं। आइए मिलकर उन विशिष्ट क्षेत्रों की पहचान करें जहाँ आपको सहायता की आवश्यकता है।",
		"career":   "करियर प्लानिंग रोमांचक है! आपकी रुचियाँ और शक्तियाँ क्या हैं? मैं आपकी मदद कर सकता हूँ।",
		"mental":   "आपका मानसिक स्वास्थ्य महत्वपूर्ण है। मैं यहाँ सुनने और आपका समर्थन करने के लिए हूँ।",
		"default":  "मैं शैक्षणिक, करियर या व्यक्तिगत चिंताओं में आपकी मदद करने के लिए यहाँ हूँ।",
	},
}

// fallbackBuckets are matched in order; the first bucket with a keyword hit
// wins, so mixed messages resolve deterministically.
var fallbackBuckets = []struct {
	name     string
	keywords []string
}{
	{"academic", []string{"academic", "study", "grade", "exam", "शैक्षणिक", "पढ़ाई"}},
	{"career", []string{"career", "job", "future", "profession", "करियर", "नौकरी"}},
	{"mental", []string{"mental", "stress", "anxiety", "worry", "मानसिक", "तनाव"}},
}

// apologyReplies cover total failure of the counselling pipeline.
var apologyReplies = map[string]string{
	"en": "I'm sorry, I'm having trouble processing your request right now. Please try again in a moment.",
	"hi": "मुझे खेद है, मैं अभी आपके अनुरोध को संसाधित करने में परेशानी हो रही है। कृपया कुछ समय बाद पुनः प्रयास करें।",
}

// ChatService answers counselling messages, preferring the generative model
// and degrading to the keyword fallback. It never fails past the request
// boundary.
type ChatService interface {
	Respond(ctx context.Context, req dto.ChatRequest) dto.ChatResponse
}

type chatService struct {
	responder ai.Responder
	timeout   time.Duration
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewChatService creates a chat service. A nil responder marks the
// generative model as unavailable and every reply comes from the fallback.
func NewChatService(responder ai.Responder, timeout time.Duration, logger zerolog.Logger) ChatService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &chatService{
		responder: responder,
		timeout:   timeout,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "chat_service").Logger(),
		now:       time.Now,
	}
}

func (s *chatService) Respond(ctx context.Context, req dto.ChatRequest) dto.ChatResponse {
	language := NormalizeLanguage(req.Language)
	// Strip any markup before the text reaches the model or the keyword
	// matcher, then undo entity escaping so plain prose survives intact.
	message := strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(req.Message)))

	response := dto.ChatResponse{
		Language:  language,
		Timestamp: s.now().UTC(),
	}

	if s.responder != nil && message != "" {
		reply, err := s.counselWithTimeout(ctx, message, language)
		if err == nil {
			observability.ChatRequests().WithLabelValues("ai").Inc()
			response.Response = reply
			response.AIPowered = true
			return response
		}

		// Timeout and provider failure are treated identically: degrade
		// to the deterministic fallback and record the cause.
		s.logger.Warn().Err(err).Str("language", language).Msg("generative counselling failed, using fallback")
		response.Error = err.Error()
	}

	observability.ChatRequests().WithLabelValues("fallback").Inc()
	response.Response = fallbackReply(message, language)
	return response
}

func (s *chatService) counselWithTimeout(ctx context.Context, message, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.responder.Counsel(ctx, message, language)
}

// Apology returns the localized generic apology used when the whole chat
// pipeline fails unexpectedly.
func Apology(language string) string {
	return apologyReplies[NormalizeLanguage(language)]
}

func fallbackReply(message, language string) string {
	lowered := strings.ToLower(message)
	for _, bucket := range fallbackBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(lowered, keyword) {
				return fallbackReplies[language][bucket.name]
			}
		}
	}

	return fallbackReplies[language]["default"]
}

// NormalizeLanguage collapses a caller-supplied language code onto one of
// the two supported locales, defaulting to English.
func NormalizeLanguage(language string) string {
	if strings.ToLower(strings.TrimSpace(language)) == "hi" {
		return "hi"
	}
	return "en"
}
