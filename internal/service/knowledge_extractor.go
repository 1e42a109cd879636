package service

import (
	"fmt"
	"io"
	"quiz-forge/internal/domain"
)

// KnowledgeExtractor reads an uploaded document and parses it into a
// KnowledgeBase.
type KnowledgeExtractor interface {
	Extract(file domain.UploadedFile) (*domain.KnowledgeBase, error)
}

type knowledgeExtractorImpl struct {
	maxBytes int64
}

// NewKnowledgeExtractor creates an extractor that refuses files larger than
// maxBytes.
func NewKnowledgeExtractor(maxBytes int64) KnowledgeExtractor {
	return &knowledgeExtractorImpl{maxBytes: maxBytes}
}

// Extract opens the file, reads at most maxBytes and parses it. The file is
// closed on every path.
func (e *knowledgeExtractorImpl) Extract(file domain.UploadedFile) (*domain.KnowledgeBase, error) {
	if file.Size() > e.maxBytes {
		return nil, domain.NewFileTooLargeError(e.maxBytes)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, domain.NewInternalError("failed to open uploaded file", err).WithStage(domain.StageExtraction)
	}
	defer rc.Close()

	// one extra byte tells an exactly-full file from an oversized one
	data, err := io.ReadAll(io.LimitReader(rc, e.maxBytes+1))
	if err != nil {
		return nil, domain.NewInternalError("failed to read uploaded file", err).WithStage(domain.StageExtraction)
	}
	if int64(len(data)) > e.maxBytes {
		return nil, domain.NewFileTooLargeError(e.maxBytes)
	}

	kb, err := domain.ParseKnowledgeBase(data)
	if err != nil {
		return nil, domain.NewMalformedDocumentError(fmt.Errorf("parse %q: %w", file.Filename(), err))
	}
	return kb, nil
}
