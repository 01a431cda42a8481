package openaichat

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/DocSummaryAPI/internal/summary/llm"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client calls the OpenAI Chat Completions API.
type Client struct {
	model       openai.ChatModel
	temperature float64
	client      *openai.Client
	logger      *logger_i.Logger
}

func NewOpenAIClient(apiKey string, model string, temperature float32, httpClient *http.Client) (llm.Provider, error) {
	if apiKey == "" {
		return nil, errors.New("openai: api key required")
	}
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	cli := openai.NewClient(opts...)
	return &Client{
		model:       openai.ChatModel(model),
		temperature: float64(temperature),
		client:      &cli,
		logger:      logger_i.NewLogger("llm_openai"),
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("openai: nil client")
	}
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		c.logger.FromContext(ctx).Error("OpenAI completion failed", "model", c.model, "error", err)
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
