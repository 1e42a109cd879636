package service

import (
	"context"
	"errors"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/validation"
	"time"

	"go.uber.org/zap"
)

// maxLoggedDiagnostic bounds how much raw completion text goes into one log line.
const maxLoggedDiagnostic = 4000

type questionGenerationServiceImpl struct {
	validator *validation.Validator
	extractor KnowledgeExtractor
	invoker   CompletionInvoker
}

// NewQuestionGenerationService wires the pipeline stages.
func NewQuestionGenerationService(validator *validation.Validator, extractor KnowledgeExtractor, invoker CompletionInvoker) domain.QuestionGenerationService {
	return &questionGenerationServiceImpl{
		validator: validator,
		extractor: extractor,
		invoker:   invoker,
	}
}

// Generate runs validation, extraction, prompt composition, completion and
// decoding strictly in order. The first failure ends the run.
func (s *questionGenerationServiceImpl) Generate(ctx context.Context, req *domain.UploadRequest) (domain.QuestionSet, error) {
	l := logger.Get().With(zap.String("request_id", requestID(req)))
	start := time.Now()

	if verr := s.validator.ValidateUploadRequest(req); verr != nil {
		logStageFailure(l, verr)
		return nil, verr
	}
	l = l.With(zap.String("user_id", req.Identity))

	kb, err := s.extractor.Extract(req.File)
	if err != nil {
		logStageFailure(l, err)
		return nil, err
	}
	rendered := kb.Render()
	l.Debug("Knowledge base extracted",
		zap.String("filename", req.File.Filename()),
		zap.Int("topics", len(kb.Topics)),
		zap.Int("rendered_len", len(rendered)))

	payload := ComposePrompt(rendered, req.Instruction)

	completionStart := time.Now()
	result, err := s.invoker.Invoke(ctx, payload)
	if err != nil {
		logStageFailure(l, err)
		return nil, err
	}
	l.Debug("Completion received",
		zap.Duration("completion_duration", time.Since(completionStart)),
		zap.Bool("present", result.Present),
		zap.Int("raw_len", len(result.RawText)))

	questions, err := DecodeQuestions(result)
	if err != nil {
		logStageFailure(l, err)
		return nil, err
	}

	l.Info("Questions generated",
		zap.Int("questions", len(questions)),
		zap.Duration("duration", time.Since(start)))
	return questions, nil
}

func requestID(req *domain.UploadRequest) string {
	if req == nil {
		return ""
	}
	return req.RequestID
}

func logStageFailure(l *zap.Logger, err error) {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		l.Error("Pipeline failed", zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("stage", domainErr.Stage),
		zap.String("code", string(domainErr.Code)),
	}
	if domainErr.Err != nil {
		fields = append(fields, zap.NamedError("cause", domainErr.Err))
	}
	if domainErr.Diagnostic != "" {
		fields = append(fields, zap.String("diagnostic", truncate(domainErr.Diagnostic, maxLoggedDiagnostic)))
	}

	switch domainErr.Code {
	case domain.ErrCompletionService, domain.ErrEmptyCompletion, domain.ErrInvalidCompletionShape, domain.ErrInternal:
		l.Error("Pipeline stage failed", fields...)
	default:
		l.Warn("Request rejected", fields...)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}
