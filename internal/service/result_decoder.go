package service

import (
	"strings"

	"quiz-forge/internal/domain"
)

// DecodeQuestions turns a completion into a validated QuestionSet. The raw
// text is shape-checked as is first; only when that fails is the outer
// wrapping (leading think blocks, an enclosing code fence) removed and the
// check repeated. The raw text of a rejected completion is kept on the error
// as a diagnostic only.
func DecodeQuestions(result domain.CompletionResult) (domain.QuestionSet, error) {
	if result.Empty() {
		return nil, domain.NewEmptyCompletionError()
	}

	trimmed := strings.TrimSpace(result.RawText)
	check := domain.CheckQuestionShape(trimmed)
	if check.IsValid() {
		return check.Questions, nil
	}

	if unwrapped := domain.SanitizeCompletion(trimmed); unwrapped != trimmed {
		if retry := domain.CheckQuestionShape(unwrapped); retry.IsValid() {
			return retry.Questions, nil
		}
	}
	return nil, domain.NewInvalidCompletionShapeError(check.Reason, result.RawText)
}
