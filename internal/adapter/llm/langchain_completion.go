package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// LangchainCompletionClient implements domain.CompletionClient on top of any
// langchaingo model. It holds no per-request state.
type LangchainCompletionClient struct {
	model       llms.Model
	provider    string
	modelName   string
	temperature float64
}

// NewLangchainCompletionClient wraps an already constructed model.
func NewLangchainCompletionClient(model llms.Model, provider, modelName string, temperature float64) *LangchainCompletionClient {
	return &LangchainCompletionClient{
		model:       model,
		provider:    provider,
		modelName:   modelName,
		temperature: temperature,
	}
}

// NewCompletionClient builds the backend selected by cfg.Provider.
func NewCompletionClient(cfg config.LLMConfig) (*LangchainCompletionClient, error) {
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	var (
		model llms.Model
		err   error
	)
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(httpClient),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		model, err = openai.New(opts...)
	case "ollama":
		if cfg.Server == "" {
			return nil, fmt.Errorf("ollama server URL cannot be empty")
		}
		model, err = ollama.New(
			ollama.WithServerURL(cfg.Server),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s LLM client: %w", cfg.Provider, err)
	}

	return NewLangchainCompletionClient(model, cfg.Provider, cfg.Model, cfg.Temperature), nil
}

// Complete sends prompt as a single user message. A response without any
// choice is reported as an absent result, not as an error.
func (c *LangchainCompletionClient) Complete(ctx context.Context, prompt string) (domain.CompletionResult, error) {
	l := logger.Get()
	l.Debug("Sending completion request",
		zap.String("provider", c.provider),
		zap.String("model", c.modelName),
		zap.Int("prompt_len", len(prompt)))

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}
	resp, err := c.model.GenerateContent(ctx, messages, llms.WithTemperature(c.temperature))
	if err != nil {
		if ctx.Err() != nil {
			return domain.CompletionResult{}, fmt.Errorf("%s completion aborted: %w", c.provider, ctx.Err())
		}
		return domain.CompletionResult{}, fmt.Errorf("%s completion failed: %w", c.provider, err)
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		l.Warn("Completion returned no choices", zap.String("provider", c.provider))
		return domain.CompletionResult{}, nil
	}

	choice := resp.Choices[0]
	l.Debug("Completion succeeded",
		zap.String("provider", c.provider),
		zap.String("stop_reason", choice.StopReason),
		zap.Int("content_len", len(choice.Content)))
	return domain.CompletionResult{RawText: choice.Content, Present: true}, nil
}

// Static assertion to ensure LangchainCompletionClient implements domain.CompletionClient
var _ domain.CompletionClient = (*LangchainCompletionClient)(nil)
