package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Question is one generated multiple-choice item. The JSON names are the
// wire format shared by the completion output and the API response.
type Question struct {
	Prompt             string   `json:"pergunta"`
	Choices            []string `json:"alternativas"`
	CorrectChoiceIndex int      `json:"respostaCorreta"`
}

// QuestionSet is the ordered result of one pipeline run.
type QuestionSet []Question

// Validate checks the Question invariants.
func (q *Question) Validate() error {
	if len(q.Choices) == 0 {
		return errors.New("alternativas must not be empty")
	}
	if q.CorrectChoiceIndex < 0 || q.CorrectChoiceIndex >= len(q.Choices) {
		return fmt.Errorf("respostaCorreta %d out of range [0, %d]", q.CorrectChoiceIndex, len(q.Choices)-1)
	}
	return nil
}

// ShapeCheck is the outcome of checking completion text against the
// QuestionSet shape: either Valid with Questions set, or Invalid with Reason.
type ShapeCheck struct {
	Questions QuestionSet
	Reason    string
	valid     bool
}

func Valid(questions QuestionSet) ShapeCheck {
	return ShapeCheck{Questions: questions, valid: true}
}

func Invalid(reason string) ShapeCheck {
	return ShapeCheck{Reason: reason}
}

func (s ShapeCheck) IsValid() bool {
	return s.valid
}

// Wire field names of a question record.
const (
	fieldPrompt  = "pergunta"
	fieldChoices = "alternativas"
	fieldCorrect = "respostaCorreta"
)

// CheckQuestionShape parses text as a JSON array of question records. Field
// names are fixed and matched exactly; unknown, missing or null fields, wrong
// types, an out-of-range respostaCorreta and trailing content all make it
// Invalid.
func CheckQuestionShape(text string) ShapeCheck {
	var elements []json.RawMessage
	if err := decodeStrict([]byte(text), &elements); err != nil {
		return Invalid(fmt.Sprintf("not a JSON array: %v", err))
	}
	if elements == nil {
		return Invalid("not a JSON array: null")
	}

	questions := make(QuestionSet, 0, len(elements))
	for i, raw := range elements {
		q, err := checkQuestion(raw)
		if err != nil {
			return Invalid(fmt.Sprintf("question %d: %v", i, err))
		}
		questions = append(questions, q)
	}
	return Valid(questions)
}

func checkQuestion(raw json.RawMessage) (Question, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Question{}, errors.New("not a JSON object")
	}
	for name := range fields {
		if name != fieldPrompt && name != fieldChoices && name != fieldCorrect {
			return Question{}, fmt.Errorf("unknown field %q", name)
		}
	}

	var q Question
	if err := decodeField(fields, fieldPrompt, &q.Prompt); err != nil {
		return Question{}, err
	}

	var choices []json.RawMessage
	if err := decodeField(fields, fieldChoices, &choices); err != nil {
		return Question{}, err
	}
	q.Choices = make([]string, 0, len(choices))
	for j, c := range choices {
		var choice string
		if isNull(c) || json.Unmarshal(c, &choice) != nil {
			return Question{}, fmt.Errorf("%s[%d] is not a string", fieldChoices, j)
		}
		q.Choices = append(q.Choices, choice)
	}

	if err := decodeField(fields, fieldCorrect, &q.CorrectChoiceIndex); err != nil {
		return Question{}, err
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

func decodeField(fields map[string]json.RawMessage, name string, v any) error {
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("missing %s", name)
	}
	if isNull(raw) {
		return fmt.Errorf("%s is null", name)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
