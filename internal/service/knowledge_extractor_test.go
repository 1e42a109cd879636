package service

import (
	"errors"
	"io"
	"strings"
	"testing"

	"quiz-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeExtractor_Extract(t *testing.T) {
	extractor := NewKnowledgeExtractor(1024)

	t.Run("success", func(t *testing.T) {
		file := newJSONFile(`{"topicos":[{"titulo":"X","conteudo":"Y"},{"titulo":"Goroutines","conteudo":"leves"}]}`)

		kb, err := extractor.Extract(file)

		require.NoError(t, err)
		require.Len(t, kb.Topics, 2)
		assert.Equal(t, domain.Topic{Title: "X", Body: "Y"}, kb.Topics[0])
		assert.True(t, file.closed)
	})

	t.Run("missing topicos", func(t *testing.T) {
		file := newJSONFile(`{"outros":[]}`)

		_, err := extractor.Extract(file)

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.ErrMalformedDocument, domainErr.Code)
		assert.Equal(t, domain.StageExtraction, domainErr.Stage)
		assert.ErrorIs(t, err, domain.ErrMissingTopics)
		assert.True(t, file.closed)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := extractor.Extract(newJSONFile("topicos: X"))
		assert.Equal(t, domain.ErrMalformedDocument, domain.CodeOf(err))
	})

	t.Run("declared size over limit is rejected before opening", func(t *testing.T) {
		file := newJSONFile(`{"topicos":[]}`)
		file.size = 4096

		_, err := extractor.Extract(file)

		assert.Equal(t, domain.ErrFileTooLarge, domain.CodeOf(err))
		assert.False(t, file.opened)
	})

	t.Run("content over limit", func(t *testing.T) {
		body := `{"topicos":[{"titulo":"X","conteudo":"` + strings.Repeat("a", 2048) + `"}]}`
		file := newJSONFile(body)
		file.size = 10 // understated by the client

		_, err := extractor.Extract(file)

		assert.Equal(t, domain.ErrFileTooLarge, domain.CodeOf(err))
		assert.True(t, file.closed)
	})

	t.Run("open failure", func(t *testing.T) {
		file := newJSONFile(`{}`)
		file.openErr = errors.New("temp file vanished")

		_, err := extractor.Extract(file)

		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.ErrInternal, domainErr.Code)
		assert.Equal(t, domain.StageExtraction, domainErr.Stage)
	})
}

func TestKnowledgeExtractor_ReadFailure(t *testing.T) {
	extractor := NewKnowledgeExtractor(1024)
	file := &readerFile{r: failingReader{}}

	_, err := extractor.Extract(file)

	assert.Equal(t, domain.ErrInternal, domain.CodeOf(err))
}

type readerFile struct {
	r io.Reader
}

func (f *readerFile) Filename() string             { return "base.json" }
func (f *readerFile) ContentType() string          { return domain.JSONMediaType }
func (f *readerFile) Size() int64                  { return 1 }
func (f *readerFile) Open() (io.ReadCloser, error) { return io.NopCloser(f.r), nil }
