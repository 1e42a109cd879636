package domain

import "context"

// QuestionGenerationService runs the upload-to-questions pipeline.
type QuestionGenerationService interface {
	// Generate returns the complete QuestionSet for req, or the first
	// stage failure as a *DomainError. It never returns partial results.
	Generate(ctx context.Context, req *UploadRequest) (QuestionSet, error)
}
