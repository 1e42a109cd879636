package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"quiz-forge/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockCompletionClient ---
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, prompt string) (domain.CompletionResult, error) {
	args := m.Called(ctx, prompt)
	return args.Get(0).(domain.CompletionResult), args.Error(1)
}

// --- MockKnowledgeExtractor ---
type MockKnowledgeExtractor struct {
	mock.Mock
}

func (m *MockKnowledgeExtractor) Extract(file domain.UploadedFile) (*domain.KnowledgeBase, error) {
	args := m.Called(file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KnowledgeBase), args.Error(1)
}

// memFile is an in-memory domain.UploadedFile that records Open and Close.
type memFile struct {
	name        string
	contentType string
	content     string
	size        int64 // overrides len(content) when non-zero
	openErr     error
	opened      bool
	closed      bool
}

func newJSONFile(content string) *memFile {
	return &memFile{name: "base.json", contentType: domain.JSONMediaType, content: content}
}

func (f *memFile) Filename() string    { return f.name }
func (f *memFile) ContentType() string { return f.contentType }

func (f *memFile) Size() int64 {
	if f.size != 0 {
		return f.size
	}
	return int64(len(f.content))
}

func (f *memFile) Open() (io.ReadCloser, error) {
	f.opened = true
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &trackingReader{Reader: strings.NewReader(f.content), file: f}, nil
}

type trackingReader struct {
	io.Reader
	file *memFile
}

func (r *trackingReader) Close() error {
	r.file.closed = true
	return nil
}

// failingReader returns an error after the first read.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
