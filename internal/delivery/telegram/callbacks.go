package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/emoquiz-bot/internal/session"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	var err error
	switch data.Action {
	case actionQuiz:
		h.answerCallback(cb.ID, "")
		quizID, convErr := strconv.Atoi(firstParam(data))
		if convErr != nil {
			h.logger.Debug("invalid quiz callback", zap.String("data", cb.Data))
			return
		}
		_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
			return h.startQuiz(ctx, chatID, quizID)
		})(ctx, chatID)
		return

	case actionAnswer:
		err = h.onSessionButton(cb, data, func(snap session.Snapshot) error {
			label, ok := data.optionLabel(snap.Question)
			if !ok {
				h.logger.Debug("invalid answer callback", zap.String("data", cb.Data))
				return nil
			}
			return h.runner.Select(ctx, chatID, label)
		})

	case actionSubmit:
		err = h.onSessionButton(cb, data, func(session.Snapshot) error {
			return h.runner.Submit(ctx, chatID)
		})

	case actionRetry:
		err = h.onSessionButton(cb, data, func(session.Snapshot) error {
			return h.runner.Retry(ctx, chatID)
		})

	case actionCancel:
		h.answerCallback(cb.ID, "")
		snap, _, ok := h.runner.Active(chatID)
		if !ok || snap.ID.String() != firstParam(data) {
			h.request(removeKeyboard(chatID, cb.Message.MessageID))
			return
		}
		err = h.runner.Cancel(ctx, chatID)

	default:
		h.answerCallback(cb.ID, "")
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		return
	}

	if err != nil {
		h.logger.Error("callback failed",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
	}
}

// onSessionButton runs fn with the current snapshot if the button belongs
// to the question currently shown. The callback is answered before fn runs because a submit may take
// several seconds; refusals are then sent as messages.
func (h *Handler) onSessionButton(cb *tgbotapi.CallbackQuery, data callbackData, fn func(session.Snapshot) error) error {
	chatID := cb.Message.Chat.ID

	ref, ok := data.sessionRef()
	if !ok {
		h.answerCallback(cb.ID, "")
		return nil
	}

	snap, _, active := h.runner.Active(chatID)
	if !active || snap.ID.String() != ref.SessionID || snap.Index != ref.Index {
		h.answerCallback(cb.ID, msgStaleButton)
		if !active || snap.ID.String() != ref.SessionID {
			h.request(removeKeyboard(chatID, cb.Message.MessageID))
		}
		return nil
	}

	h.answerCallback(cb.ID, "")

	if err := fn(snap); err != nil {
		if text, ok := userMessage(err); ok {
			h.sendText(chatID, text)
			return nil
		}
		h.sendText(chatID, msgInternalError)
		return err
	}
	return nil
}

// answerCallback removes the user's "clock", optionally with a notice.
func (h *Handler) answerCallback(id, text string) {
	h.request(tgbotapi.NewCallback(id, text))
}

func firstParam(cd callbackData) string {
	if len(cd.Params) == 0 {
		return ""
	}
	return cd.Params[0]
}
