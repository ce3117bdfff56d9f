package telegram

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/service"
	"github.com/aliskhannn/emoquiz-bot/internal/session"
	"github.com/aliskhannn/emoquiz-bot/internal/storage"
)

// View renders quiz sessions as a single question card per chat that is
// edited in place on every transition.
type View struct {
	bot      Sender
	sessions *storage.SessionStorage
	logger   *zap.Logger
}

func NewView(bot Sender, sessions *storage.SessionStorage, logger *zap.Logger) *View {
	return &View{bot: bot, sessions: sessions, logger: logger}
}

// ShowSession sends the question card, or edits it if it was sent already.
func (v *View) ShowSession(chatID int64, title string, snap session.Snapshot) {
	cameraOn := false
	if aq, ok := v.sessions.Get(chatID); ok && aq.Camera != nil {
		cameraOn = aq.Camera.Enabled()
	}

	text := formatQuestionCard(title, snap, cameraOn)
	kb := buildSessionKeyboard(snap)

	if msgID, ok := v.sessions.MessageID(chatID); ok {
		edit := newEdit(chatID, msgID, text)
		edit.ReplyMarkup = kb
		if _, err := v.bot.Send(edit); err != nil {
			v.logger.Warn("failed to edit question card",
				zap.Int64("chat_id", chatID),
				zap.Stringer("session_id", snap.ID),
				zap.Error(err),
			)
		}
		return
	}

	msg := newMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	sent, err := v.bot.Send(msg)
	if err != nil {
		v.logger.Error("failed to send question card",
			zap.Int64("chat_id", chatID),
			zap.Stringer("session_id", snap.ID),
			zap.Error(err),
		)
		return
	}
	v.sessions.SetMessageID(chatID, sent.MessageID)
}

// ShowCompletion replaces the question card with the quiz summary. A long
// review continues in follow-up messages.
func (v *View) ShowCompletion(chatID int64, title string, c entities.Completion) {
	parts := formatCompletion(title, c)

	if msgID, ok := v.sessions.MessageID(chatID); ok {
		if _, err := v.bot.Send(newEdit(chatID, msgID, parts[0])); err != nil {
			v.logger.Warn("failed to edit question card with quiz summary",
				zap.Int64("chat_id", chatID),
				zap.Int("quiz_id", c.QuizID),
				zap.Error(err),
			)
		} else {
			parts = parts[1:]
		}
	}

	for _, text := range parts {
		if _, err := v.bot.Send(newMessage(chatID, text)); err != nil {
			v.logger.Error("failed to send quiz summary",
				zap.Int64("chat_id", chatID),
				zap.Int("quiz_id", c.QuizID),
				zap.Error(err),
			)
			return
		}
	}
}

// ShowAbandoned tells the chat its quiz was closed.
func (v *View) ShowAbandoned(chatID int64, title string) {
	text := md("Quiz ") + bold(title) + md(" was closed. Answers you already submitted are kept.")
	if _, err := v.bot.Send(newMessage(chatID, text)); err != nil {
		v.logger.Warn("failed to notify abandoned quiz",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

var _ service.SessionView = (*View)(nil)
