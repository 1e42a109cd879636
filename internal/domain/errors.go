package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"

	// Request errors
	ErrMissingFile         ErrorCode = "MISSING_FILE"
	ErrMissingInstruction  ErrorCode = "MISSING_INSTRUCTION"
	ErrUnsupportedFileType ErrorCode = "UNSUPPORTED_FILE_TYPE"
	ErrMalformedDocument   ErrorCode = "MALFORMED_DOCUMENT"
	ErrFileTooLarge        ErrorCode = "FILE_TOO_LARGE"

	// Completion errors
	ErrCompletionService      ErrorCode = "COMPLETION_SERVICE_ERROR"
	ErrEmptyCompletion        ErrorCode = "EMPTY_COMPLETION"
	ErrInvalidCompletionShape ErrorCode = "INVALID_COMPLETION_SHAPE"
)

// Pipeline stage names, used to tag errors and log lines.
const (
	StageValidation = "input_validation"
	StageExtraction = "knowledge_extraction"
	StageCompletion = "completion"
	StageDecoding   = "result_decoding"
)

// Outward messages. They are shown to the caller verbatim, so they never
// carry diagnostic details.
const (
	MsgUnauthorized        = "Não autorizado"
	MsgMissingFile         = "Arquivo não recebido."
	MsgMissingInstruction  = "Prompt não fornecido."
	MsgUnsupportedFileType = "Apenas arquivos JSON são aceitos."
	MsgMalformedDocument   = "Formato inválido. Esperado: { topicos: [...] }"
	MsgFileTooLarge        = "Arquivo muito grande."
	MsgCompletionService   = "Erro ao gerar questões."
	MsgInvalidCompletion   = "A IA retornou um conteúdo inválido. Verifique o prompt."
	MsgInternal            = "Erro interno do servidor."
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Stage is the pipeline stage that produced the error, if any.
	Stage string `json:"-"`
	// Diagnostic holds operator-only context such as the raw completion text.
	Diagnostic string `json:"-"`
	Err        error  `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithStage returns e tagged with the given pipeline stage.
func (e *DomainError) WithStage(stage string) *DomainError {
	e.Stage = stage
	return e
}

// CodeOf returns the ErrorCode carried by err, or ErrInternal when err is not
// a DomainError.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrInternal
}

// Helper functions for common errors
func NewUnauthorizedError() *DomainError {
	return NewError(ErrUnauthorized, MsgUnauthorized, nil).WithStage(StageValidation)
}

func NewMissingFileError() *DomainError {
	return NewError(ErrMissingFile, MsgMissingFile, nil).WithStage(StageValidation)
}

func NewMissingInstructionError() *DomainError {
	return NewError(ErrMissingInstruction, MsgMissingInstruction, nil).WithStage(StageValidation)
}

func NewUnsupportedFileTypeError(declared string) *DomainError {
	e := NewError(ErrUnsupportedFileType, MsgUnsupportedFileType, nil).WithStage(StageValidation)
	e.Diagnostic = fmt.Sprintf("declared media type %q", declared)
	return e
}

func NewMalformedDocumentError(err error) *DomainError {
	return NewError(ErrMalformedDocument, MsgMalformedDocument, err).WithStage(StageExtraction)
}

func NewFileTooLargeError(limit int64) *DomainError {
	e := NewError(ErrFileTooLarge, MsgFileTooLarge, nil).WithStage(StageExtraction)
	e.Diagnostic = fmt.Sprintf("limit %d bytes", limit)
	return e
}

func NewCompletionServiceError(err error) *DomainError {
	return NewError(ErrCompletionService, MsgCompletionService, err).WithStage(StageCompletion)
}

func NewEmptyCompletionError() *DomainError {
	return NewError(ErrEmptyCompletion, MsgInvalidCompletion, nil).WithStage(StageDecoding)
}

// NewInvalidCompletionShapeError keeps the raw completion text as a
// diagnostic; it must never reach the caller.
func NewInvalidCompletionShapeError(reason string, rawText string) *DomainError {
	e := NewError(ErrInvalidCompletionShape, MsgInvalidCompletion, errors.New(reason)).WithStage(StageDecoding)
	e.Diagnostic = rawText
	return e
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}
