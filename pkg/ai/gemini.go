package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiConfig defines configuration options for the Gemini responder.
type GeminiConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Logger    zerolog.Logger
}

// GeminiResponder implements Responder against the Google Gemini API.
type GeminiResponder struct {
	client *genai.Client
	cfg    GeminiConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewGeminiResponder builds a Gemini-backed counselling responder.
func NewGeminiResponder(ctx context.Context, cfg GeminiConfig) (*GeminiResponder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiResponder{
		client: client,
		cfg:    cfg,
		tracer: otel.Tracer("github.com/dropfixer/dropfixer-api/pkg/ai/gemini"),
		logger: cfg.Logger.With().Str("component", "gemini_responder").Logger(),
	}, nil
}

// Counsel sends the message to Gemini and returns the generated reply.
func (r *GeminiResponder) Counsel(parent context.Context, message, language string) (string, error) {
	ctx, span := r.tracer.Start(parent, "gemini.counsel", trace.WithAttributes(
		attribute.String("model", r.cfg.Model),
		attribute.String("language", language),
	))
	defer span.End()

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(r.cfg.MaxTokens),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: counselorSystemPrompt(language)}},
		},
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: counselorUserPrompt(message, language)}},
	}}

	start := time.Now()
	result, err := r.client.Models.GenerateContent(ctx, r.cfg.Model, contents, config)
	aiDuration.WithLabelValues(r.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(r.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("gemini counsel: %w", err)
	}

	reply := strings.TrimSpace(result.Text())
	if reply == "" {
		err := fmt.Errorf("empty response from gemini")
		aiFailures.WithLabelValues(r.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return reply, nil
}
