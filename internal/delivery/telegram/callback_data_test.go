package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/session"
)

func TestCallbackDataRoundTrip(t *testing.T) {
	const sessionID = "3f2b1c9e-6a7d-4e21-9a55-2c1d0e8f7a61"

	tests := []struct {
		name   string
		data   string
		action string
		params []string
	}{
		{name: "quiz", data: buildQuizStartCallback(12), action: actionQuiz, params: []string{"12"}},
		{name: "answer", data: buildAnswerCallback(sessionID, 2, 1), action: actionAnswer, params: []string{sessionID, "2", "1"}},
		{name: "submit", data: buildSubmitCallback(sessionID, 0), action: actionSubmit, params: []string{sessionID, "0"}},
		{name: "retry", data: buildRetryCallback(sessionID, 1), action: actionRetry, params: []string{sessionID, "1"}},
		{name: "cancel", data: buildCancelCallback(sessionID), action: actionCancel, params: []string{sessionID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.LessOrEqual(t, len(tt.data), 64, "telegram limits callback data to 64 bytes")

			cd := decodeCallback(tt.data)
			assert.Equal(t, tt.action, cd.Action)
			assert.Equal(t, tt.params, cd.Params)
			assert.Equal(t, tt.data, cd.encode())
		})
	}
}

func TestSessionRef(t *testing.T) {
	ref, ok := decodeCallback("submit:abc:3").sessionRef()
	require.True(t, ok)
	assert.Equal(t, sessionRef{SessionID: "abc", Index: 3}, ref)

	for _, data := range []string{"submit", "submit:abc", "submit:abc:x", "submit::1", "submit:abc:-1"} {
		_, ok := decodeCallback(data).sessionRef()
		assert.False(t, ok, data)
	}
}

func TestAnswerCallbackResolvesOptionLabel(t *testing.T) {
	const sessionID = "3f2b1c9e-6a7d-4e21-9a55-2c1d0e8f7a61"

	q := &entities.Question{
		Text: "How do you feel about exams?",
		Options: entities.Options{
			{Label: "1:2", Text: "ratio"},
			{Label: "Strongly disagree with the statement above", Text: "long label"},
			{Label: "C", Text: "plain"},
		},
	}

	for i, c := range q.Options {
		data := buildAnswerCallback(sessionID, 99, i)
		assert.LessOrEqual(t, len(data), 64, "telegram limits callback data to 64 bytes")

		label, ok := decodeCallback(data).optionLabel(q)
		require.True(t, ok, c.Label)
		assert.Equal(t, c.Label, label)
	}
}

func TestAnswerCallbackRejectsBadPosition(t *testing.T) {
	q := &entities.Question{Options: entities.Options{{Label: "A"}, {Label: "B"}}}

	for _, data := range []string{"answer:abc:0", "answer:abc:0:x", "answer:abc:0:-1", "answer:abc:0:2"} {
		_, ok := decodeCallback(data).optionLabel(q)
		assert.False(t, ok, data)
	}

	_, ok := decodeCallback("answer:abc:0:0").optionLabel(nil)
	assert.False(t, ok)
}

func TestSessionKeyboardFitsLongLabels(t *testing.T) {
	snap := testSnapshot(session.Answering, "")
	snap.Index = 42
	snap.Question.Options = entities.Options{
		{Label: strings.Repeat("x", 80), Text: "long"},
		{Label: "a:b:c", Text: "colons"},
	}

	kb := buildSessionKeyboard(snap)
	require.NotNil(t, kb)
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			assert.LessOrEqual(t, len(*btn.CallbackData), 64)
		}
	}
}
