package domain

import (
	"context"
	"strings"
)

// PromptPayload is the final text sent to the completion capability.
type PromptPayload struct {
	Text string
}

// CompletionResult is the capability's reply. Present is false when it
// returned no choice at all.
type CompletionResult struct {
	RawText string
	Present bool
}

// Empty reports whether the result carries no usable text.
func (r CompletionResult) Empty() bool {
	return !r.Present || strings.TrimSpace(r.RawText) == ""
}

// CompletionClient is the external large-language-model capability: a
// single user message in, a text completion out. Implementations are
// constructed once per process and must be safe for concurrent use.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (CompletionResult, error)
}
