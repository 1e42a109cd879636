package service

import (
	"quiz-forge/internal/domain"
	"strings"
)

const (
	knowledgeHeader   = "Base de conhecimento:"
	instructionHeader = "Instrução do usuário:"
)

// ComposePrompt builds the completion payload: a knowledge-base section
// followed by the trimmed user instruction. User content is not escaped.
func ComposePrompt(renderedKnowledge string, instruction string) domain.PromptPayload {
	var sb strings.Builder
	sb.Grow(len(renderedKnowledge) + len(instruction) + 64)

	sb.WriteString("\n")
	sb.WriteString(knowledgeHeader)
	sb.WriteString("\n")
	sb.WriteString(renderedKnowledge)
	sb.WriteString("\n\n")
	sb.WriteString(instructionHeader)
	sb.WriteString("\n")
	sb.WriteString(strings.TrimSpace(instruction))
	sb.WriteString("\n")

	return domain.PromptPayload{Text: sb.String()}
}
