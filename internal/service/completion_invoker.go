package service

import (
	"context"
	"quiz-forge/internal/domain"
)

// CompletionInvoker sends a composed prompt to the completion capability.
// Failures are surfaced immediately; there is no retry.
type CompletionInvoker interface {
	Invoke(ctx context.Context, payload domain.PromptPayload) (domain.CompletionResult, error)
}

type completionInvokerImpl struct {
	client domain.CompletionClient
}

// NewCompletionInvoker wraps the process-wide completion client.
func NewCompletionInvoker(client domain.CompletionClient) CompletionInvoker {
	return &completionInvokerImpl{client: client}
}

func (i *completionInvokerImpl) Invoke(ctx context.Context, payload domain.PromptPayload) (domain.CompletionResult, error) {
	result, err := i.client.Complete(ctx, payload.Text)
	if err != nil {
		return domain.CompletionResult{}, domain.NewCompletionServiceError(err)
	}
	return result, nil
}
