package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/emoquiz-bot/internal/session"
	"github.com/aliskhannn/emoquiz-bot/internal/storage"
)

func newTestView(t *testing.T) (*View, *fakeBot, *storage.SessionStorage) {
	t.Helper()
	bot := &fakeBot{}
	sessions := storage.NewSessionStorage()
	sessions.Store(testChatID, &storage.ActiveQuiz{Title: "Lecture feedback"})
	return NewView(bot, sessions, zap.NewNop()), bot, sessions
}

func TestViewEditsCardInPlace(t *testing.T) {
	view, bot, sessions := newTestView(t)

	view.ShowSession(testChatID, "Lecture feedback", testSnapshot(session.Answering, ""))
	view.ShowSession(testChatID, "Lecture feedback", testSnapshot(session.Submitting, "A"))

	require.Len(t, bot.sent, 2)
	_, ok := bot.sent[0].(tgbotapi.MessageConfig)
	assert.True(t, ok)
	edit, ok := bot.sent[1].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Nil(t, edit.ReplyMarkup, "no buttons while submitting")

	msgID, ok := sessions.MessageID(testChatID)
	require.True(t, ok)
	assert.Equal(t, msgID, edit.MessageID)
}

func TestViewShowCompletionSplitsReview(t *testing.T) {
	view, bot, sessions := newTestView(t)
	sessions.SetMessageID(testChatID, 7)

	c := longCompletion(25)
	view.ShowCompletion(testChatID, "Lecture feedback", c)

	parts := formatCompletion("Lecture feedback", c)
	require.Greater(t, len(parts), 1)
	require.Len(t, bot.sent, len(parts))

	edit, ok := bot.sent[0].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok, "the card shows the first part")
	assert.Equal(t, 7, edit.MessageID)
	assert.Equal(t, parts[0], edit.Text)

	for i, sent := range bot.sent[1:] {
		msg, ok := sent.(tgbotapi.MessageConfig)
		require.True(t, ok)
		assert.Equal(t, parts[i+1], msg.Text)
	}
}

func TestViewShowCompletionWithoutCard(t *testing.T) {
	view, bot, _ := newTestView(t)

	view.ShowCompletion(testChatID, "Lecture feedback", longCompletion(2))

	require.Len(t, bot.sent, 1)
	_, ok := bot.sent[0].(tgbotapi.MessageConfig)
	assert.True(t, ok)
}
