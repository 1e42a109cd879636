package validation

import (
	"quiz-forge/internal/domain"
	"strings"
)

// Validator checks upload requests before any expensive work is done. It
// only looks at request metadata and never reads file content.
type Validator struct {
	expectedMediaType string
}

// NewValidator creates a new validator instance accepting JSON uploads.
func NewValidator() *Validator {
	return &Validator{expectedMediaType: domain.JSONMediaType}
}

// ValidateUploadRequest runs the checks in order: identity, file presence,
// instruction presence, declared media type. The first failure wins.
func (v *Validator) ValidateUploadRequest(req *domain.UploadRequest) *domain.DomainError {
	if req == nil || !req.Authenticated() {
		return domain.NewUnauthorizedError()
	}

	if req.File == nil {
		return domain.NewMissingFileError()
	}

	if strings.TrimSpace(req.Instruction) == "" {
		return domain.NewMissingInstructionError()
	}

	// Exact match: parameters such as "; charset=utf-8" are not accepted.
	if declared := req.File.ContentType(); declared != v.expectedMediaType {
		return domain.NewUnsupportedFileTypeError(declared)
	}

	return nil
}
