package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"resumelens/resume-extractor/internal/models"
)

// contentCaller abstracts the genai client call so model fallback can be
// exercised in tests.
type contentCaller interface {
	GenerateContent(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type genaiCaller struct {
	client *genai.Client
}

func (c *genaiCaller) GenerateContent(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
}

type GeminiService interface {
	// ExtractStructured builds the extraction prompt for the resume text
	// and returns the raw model response.
	ExtractStructured(ctx context.Context, text string) (string, error)
}

type geminiService struct {
	caller        contentCaller
	candidates    []string
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewGeminiService(apiKey string, candidates []string, variant models.SkillsVariant, logger *zap.Logger) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		caller:        &genaiCaller{client: client},
		candidates:    candidates,
		promptBuilder: NewPromptBuilder(variant),
		logger:        logger,
	}, nil
}

// ExtractStructured tries each configured model in order. Unavailable
// models (not-found or unsupported) advance to the next candidate; any
// other failure class stops immediately since retrying an unrelated model
// cannot fix auth, quota, or safety problems.
func (g *geminiService) ExtractStructured(ctx context.Context, text string) (string, error) {
	prompt := g.promptBuilder.BuildExtractionPrompt(text)

	// Temperature pinned to 0 for determinism
	temperature := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
		ResponseSchema:   g.promptBuilder.ResponseSchema(),
	}

	var lastErr error
	for _, model := range g.candidates {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("extraction cancelled: %w", err)
		}

		resp, err := g.caller.GenerateContent(ctx, model, prompt, config)
		if err != nil {
			if isModelUnavailable(err) {
				g.logger.Warn("model unavailable, trying next candidate",
					zap.String("model", model),
					zap.Error(err),
				)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content with %s: %w", model, err)
		}

		raw := responseText(resp)
		if raw == "" {
			return "", fmt.Errorf("%w (model %s)", models.ErrContentBlocked, model)
		}

		g.logger.Debug("model responded",
			zap.String("model", model),
			zap.Int("response_length", len(raw)),
		)
		return raw, nil
	}

	return "", &models.ModelsExhaustedError{Last: lastErr}
}

// isModelUnavailable classifies not-found and unsupported-model failures,
// the only class worth advancing past. The Gemini API reports these as 404
// with messages like "models/x is not found for API version v1beta, or is
// not supported for generateContent".
func isModelUnavailable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound || apiErr.Status == "NOT_FOUND" {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "is not found") ||
		strings.Contains(msg, "not supported for generatecontent")
}

// responseText joins the textual parts of the response candidates. An
// empty result means the model answered with no usable payload, e.g. a
// content-safety block.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(part.Text)
		}
	}

	return strings.TrimSpace(builder.String())
}
