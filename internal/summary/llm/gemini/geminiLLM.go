package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/DocSummaryAPI/internal/summary/llm"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client      *genai.Client
	modelName   string
	temperature float32
	logger      *logger_i.Logger
}

func NewGeminiClient(ctx context.Context, apikey string, modelName string, temperature float32, httpClient *http.Client) (llm.Provider, error) {
	if apikey == "" {
		return nil, errors.New("gemini: api key required")
	}
	logger := logger_i.NewLogger("llm_gemini")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apikey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		logger.Error("Error creating Gemini client", "error", err)
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	logger.Info("Gemini client created", "model", modelName)
	return &llmClient{client: c, modelName: modelName, temperature: temperature, logger: logger}, nil
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	log := c.logger.FromContext(ctx)

	contentConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), contentConfig)
	if err != nil {
		log.Error("Gemini generate failed", "model", c.modelName, "error", err)
		return "", fmt.Errorf("gemini: %w", err)
	}
	if result == nil {
		return "", errors.New("gemini: empty response")
	}
	return result.Text(), nil
}
