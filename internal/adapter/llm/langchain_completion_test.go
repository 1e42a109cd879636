package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-forge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// MockModel is a testify mock of llms.Model.
type MockModel struct {
	mock.Mock
}

func (m *MockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, o := range options {
		o(&opts)
	}
	args := m.Called(ctx, messages, opts.Temperature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func (m *MockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestLangchainCompletionClient_Complete_Success(t *testing.T) {
	model := new(MockModel)
	client := NewLangchainCompletionClient(model, "openai", "gpt-4", 0.2)
	ctx := context.Background()
	prompt := "\nBase de conhecimento:\nX: Y\n\nInstrução do usuário:\nGere 2 questões sobre X\n"

	expectedMessages := []llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, prompt)}
	model.On("GenerateContent", ctx, expectedMessages, 0.2).Return(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: `[{"pergunta":"P?"}]`, StopReason: "stop"}},
	}, nil).Once()

	result, err := client.Complete(ctx, prompt)

	require.NoError(t, err)
	assert.True(t, result.Present)
	assert.Equal(t, `[{"pergunta":"P?"}]`, result.RawText)
	model.AssertExpectations(t)
}

func TestLangchainCompletionClient_Complete_NoChoices(t *testing.T) {
	tests := []struct {
		name string
		resp *llms.ContentResponse
	}{
		{name: "nil response", resp: nil},
		{name: "empty choices", resp: &llms.ContentResponse{}},
		{name: "nil choice", resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := new(MockModel)
			client := NewLangchainCompletionClient(model, "ollama", "qwen3:0.6b", 0)
			if tt.resp == nil {
				model.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Once()
			} else {
				model.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(tt.resp, nil).Once()
			}

			result, err := client.Complete(context.Background(), "prompt")

			require.NoError(t, err)
			assert.False(t, result.Present)
			assert.True(t, result.Empty())
		})
	}
}

func TestLangchainCompletionClient_Complete_Error(t *testing.T) {
	model := new(MockModel)
	client := NewLangchainCompletionClient(model, "openai", "gpt-4", 0.7)
	backendErr := errors.New("429 insufficient_quota")
	model.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(nil, backendErr).Once()

	_, err := client.Complete(context.Background(), "prompt")

	require.Error(t, err)
	assert.ErrorIs(t, err, backendErr)
	assert.Contains(t, err.Error(), "openai completion failed")
}

func TestLangchainCompletionClient_Complete_ContextCanceled(t *testing.T) {
	model := new(MockModel)
	client := NewLangchainCompletionClient(model, "openai", "gpt-4", 0.7)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	model.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("request canceled")).Once()

	_, err := client.Complete(ctx, "prompt")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewCompletionClient(t *testing.T) {
	t.Run("openai requires api key", func(t *testing.T) {
		_, err := NewCompletionClient(config.LLMConfig{Provider: "openai", Model: "gpt-4"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key cannot be empty")
	})

	t.Run("openai", func(t *testing.T) {
		client, err := NewCompletionClient(config.LLMConfig{
			Provider: "openai",
			APIKey:   "sk-test",
			Model:    "gpt-4",
			BaseURL:  "http://localhost:1234/v1",
			Timeout:  5 * time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, "openai", client.provider)
		assert.Equal(t, "gpt-4", client.modelName)
	})

	t.Run("ollama requires server", func(t *testing.T) {
		_, err := NewCompletionClient(config.LLMConfig{Provider: "ollama", Model: "qwen3:0.6b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server URL cannot be empty")
	})

	t.Run("ollama", func(t *testing.T) {
		client, err := NewCompletionClient(config.LLMConfig{
			Provider: "ollama",
			Server:   "http://localhost:11434",
			Model:    "qwen3:0.6b",
		})
		require.NoError(t, err)
		assert.Equal(t, "ollama", client.provider)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewCompletionClient(config.LLMConfig{Provider: "gemini"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported LLM provider")
	})
}
