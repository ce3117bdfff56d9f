package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Choice is one answer option of a question.
type Choice struct {
	Label string // option label, e.g. "A"
	Text  string // option text shown to the user
}

// Options is an ordered set of choices. The remote service sends them as a
// JSON object; decoding keeps the object's key order for display.
type Options []Choice

// Has reports whether label names one of the options.
func (o Options) Has(label string) bool {
	for _, c := range o {
		if c.Label == label {
			return true
		}
	}
	return false
}

// Text returns the text of the option with the given label.
func (o Options) Text(label string) (string, bool) {
	for _, c := range o {
		if c.Label == label {
			return c.Text, true
		}
	}
	return "", false
}

// MarshalJSON encodes options as an object, preserving order.
func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a {label: text} object in document order.
func (o *Options) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("options: expected JSON object")
	}

	var out Options
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("options: unexpected key %v", tok)
		}

		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("options: value of %q: %w", label, err)
		}

		if _, dup := seen[label]; dup {
			return fmt.Errorf("options: duplicate label %q", label)
		}
		seen[label] = struct{}{}

		out = append(out, Choice{Label: label, Text: text})
	}

	*o = out
	return nil
}

// Question is a single multiple-choice question of a quiz. It is immutable
// once loaded for a session.
type Question struct {
	ID            int     `json:"questionId"` // question ID within its quiz
	Text          string  `json:"text"`       // prompt text
	Options       Options `json:"options"`    // ordered choices
	CorrectAnswer string  `json:"correct"`    // label of the correct choice
	Topic         string  `json:"topic"`      // topic label used by the analysis
}

// IsCorrect reports whether label is the correct choice.
func (q Question) IsCorrect(label string) bool {
	return label != "" && label == q.CorrectAnswer
}

// Quiz is a quiz as returned by the remote service.
type Quiz struct {
	ID            int        `json:"quizId"`
	Title         string     `json:"title"`
	CreatedAt     time.Time  `json:"createdAt"`
	QuestionCount int        `json:"question_count"` // target number of questions set by the author
	Questions     []Question `json:"questions"`
}

// QuestionDraft is a question being authored by an admin.
type QuestionDraft struct {
	Text    string  `json:"text"`
	Options Options `json:"options"`
	Correct string  `json:"correct"`
	Topic   string  `json:"topic"`
}

var ErrInvalidQuestionDraft = errors.New("invalid question draft")

// Validate checks that the draft can be sent to the remote service.
func (d QuestionDraft) Validate() error {
	switch {
	case d.Text == "":
		return fmt.Errorf("%w: empty text", ErrInvalidQuestionDraft)
	case len(d.Options) < 2:
		return fmt.Errorf("%w: at least two options are required", ErrInvalidQuestionDraft)
	case !d.Options.Has(d.Correct):
		return fmt.Errorf("%w: correct answer %q is not an option", ErrInvalidQuestionDraft, d.Correct)
	case d.Topic == "":
		return fmt.Errorf("%w: empty topic", ErrInvalidQuestionDraft)
	}
	return nil
}
