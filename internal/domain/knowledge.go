package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Field names of the uploaded knowledge-base document.
const (
	topicsField     = "topicos"
	topicTitleField = "titulo"
	topicBodyField  = "conteudo"
)

var (
	ErrInvalidUTF8     = errors.New("document is not valid UTF-8")
	ErrNotJSONObject   = errors.New("document is not a JSON object")
	ErrMissingTopics   = errors.New(`document has no "topicos" field`)
	ErrTopicsNotArray  = errors.New(`"topicos" is not an array`)
	ErrTopicsEmpty     = errors.New(`"topicos" is empty`)
	ErrTrailingContent = errors.New("unexpected content after JSON value")
)

// Topic is one titled unit of source knowledge.
type Topic struct {
	Title string
	Body  string
}

// KnowledgeBase is the parsed upload.
type KnowledgeBase struct {
	Topics []Topic
}

// ParseKnowledgeBase decodes raw upload bytes. Topic elements are read
// leniently: a missing or null title/body becomes "", a non-string scalar
// keeps its JSON text and a non-object element yields an empty topic.
func ParseKnowledgeBase(data []byte) (*KnowledgeBase, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}

	var doc map[string]json.RawMessage
	if err := decodeStrict(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotJSONObject
		}
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotJSONObject
	}

	rawTopics, ok := doc[topicsField]
	if !ok {
		return nil, ErrMissingTopics
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(rawTopics, &elements); err != nil || elements == nil {
		return nil, ErrTopicsNotArray
	}
	if len(elements) == 0 {
		return nil, ErrTopicsEmpty
	}

	kb := &KnowledgeBase{Topics: make([]Topic, 0, len(elements))}
	for _, el := range elements {
		kb.Topics = append(kb.Topics, lenientTopic(el))
	}
	return kb, nil
}

func lenientTopic(raw json.RawMessage) Topic {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Topic{}
	}
	return Topic{
		Title: scalarText(fields[topicTitleField]),
		Body:  scalarText(fields[topicBodyField]),
	}
}

func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	return string(trimmed)
}

// Render joins topics as "title: body" separated by a blank line, in order.
func (kb *KnowledgeBase) Render() string {
	lines := make([]string, 0, len(kb.Topics))
	for _, t := range kb.Topics {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Title, t.Body))
	}
	return strings.Join(lines, "\n\n")
}

// decodeStrict unmarshals exactly one JSON value from data; anything but
// whitespace after it is an error.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return ErrTrailingContent
	}
	return nil
}
