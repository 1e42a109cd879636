package dto

import "quiz-forge/internal/domain"

// GenerateQuestionsResponse is the success body of POST /api/gerar.
// @Description Generated multiple-choice questions
type GenerateQuestionsResponse struct {
	Questoes domain.QuestionSet `json:"questoes"`
}

// ErrorResponse is the failure body of every endpoint.
// @Description Short, non-leaking error description
type ErrorResponse struct {
	Erro string `json:"erro"`
}
