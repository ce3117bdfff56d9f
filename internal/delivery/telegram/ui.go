package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/session"
)

const optionsPerRow = 4

// buildSessionKeyboard builds the keyboard of a question card. A submitting
// session has no buttons.
func buildSessionKeyboard(snap session.Snapshot) *tgbotapi.InlineKeyboardMarkup {
	if snap.Question == nil || snap.State == session.Submitting || snap.State == session.Complete {
		return nil
	}

	sessionID := snap.ID.String()

	var (
		rows [][]tgbotapi.InlineKeyboardButton
		row  []tgbotapi.InlineKeyboardButton
	)
	for i, c := range snap.Question.Options {
		text := c.Label
		if c.Label == snap.Selected {
			text = "✅ " + c.Label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(text, buildAnswerCallback(sessionID, snap.Index, i)))
		if len(row) == optionsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	var actions []tgbotapi.InlineKeyboardButton
	switch {
	case snap.State == session.Failed:
		actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("🔁 Retry", buildRetryCallback(sessionID, snap.Index)))
	case snap.Selected != "":
		actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("📨 Submit", buildSubmitCallback(sessionID, snap.Index)))
	}
	actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", buildCancelCallback(sessionID)))
	rows = append(rows, actions)

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildQuizListKeyboard builds one start button per quiz.
func buildQuizListKeyboard(quizzes []entities.Quiz) *tgbotapi.InlineKeyboardMarkup {
	if len(quizzes) == 0 {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(quizzes))
	for _, q := range quizzes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("▶️ %s", q.Title), buildQuizStartCallback(q.ID)),
		))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// removeKeyboard clears the buttons of a message that is no longer active.
func removeKeyboard(chatID int64, msgID int) tgbotapi.EditMessageReplyMarkupConfig {
	return tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
}
