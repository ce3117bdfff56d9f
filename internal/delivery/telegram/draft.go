package telegram

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
)

var optionLine = regexp.MustCompile(`^([A-Za-z0-9]{1,3})\s*[:.)]\s*(.+)$`)

// parseQuestionDraft reads a question written as
//
//	question text (one or more lines)
//	A: option
//	B: option
//	correct: B
//	topic: some topic
//
// Labels are upper-cased. The result is not validated.
func parseQuestionDraft(text string) (entities.QuestionDraft, error) {
	var (
		d         entities.QuestionDraft
		textLines []string
		seen      = make(map[string]struct{})
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if v, ok := cutKey(line, "correct"); ok {
			d.Correct = strings.ToUpper(v)
			continue
		}
		if v, ok := cutKey(line, "topic"); ok {
			d.Topic = v
			continue
		}

		if len(textLines) > 0 {
			if m := optionLine.FindStringSubmatch(line); m != nil {
				label := strings.ToUpper(m[1])
				if _, dup := seen[label]; dup {
					return entities.QuestionDraft{}, fmt.Errorf("%w: duplicate option %q", entities.ErrInvalidQuestionDraft, label)
				}
				seen[label] = struct{}{}
				d.Options = append(d.Options, entities.Choice{Label: label, Text: strings.TrimSpace(m[2])})
				continue
			}
		}

		if len(d.Options) > 0 {
			return entities.QuestionDraft{}, fmt.Errorf("%w: unexpected line %q", entities.ErrInvalidQuestionDraft, line)
		}
		textLines = append(textLines, line)
	}

	d.Text = strings.Join(textLines, "\n")
	return d, nil
}

// cutKey returns the value of a "key: value" line, ignoring key case.
func cutKey(line, key string) (string, bool) {
	k, v, ok := strings.Cut(line, ":")
	if !ok || !strings.EqualFold(strings.TrimSpace(k), key) {
		return "", false
	}
	return strings.TrimSpace(v), true
}
