package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/emoquiz-bot/internal/api"
	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/service"
	"github.com/aliskhannn/emoquiz-bot/internal/session"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling replies with a specific text for expected errors and a
// generic one for everything else.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if text, ok := userMessage(err); ok {
			h.logger.Debug("request refused",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendText(chatID, text)
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendText(chatID, msgInternalError)
		return nil
	}
}

// userMessage maps expected errors to the text shown to the user.
func userMessage(err error) (string, bool) {
	var se *api.ServerError

	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		return msgNotLoggedIn, true
	case errors.Is(err, service.ErrForbidden):
		return msgForbidden, true
	case errors.Is(err, service.ErrNoActiveQuiz):
		return msgNoActiveQuiz, true
	case errors.Is(err, service.ErrEmptyQuiz):
		return msgEmptyQuiz, true
	case errors.Is(err, session.ErrNoChoice):
		return msgNoChoice, true
	case errors.Is(err, session.ErrUnknownChoice):
		return msgUnknownChoice, true
	case errors.Is(err, session.ErrSubmitInFlight):
		return msgSubmitInFlight, true
	case errors.Is(err, session.ErrSessionComplete):
		return msgSessionComplete, true
	case errors.Is(err, session.ErrSessionClosed):
		return msgSessionClosed, true
	case errors.Is(err, api.ErrQuizNotFound):
		return msgQuizNotFound, true
	case errors.Is(err, api.ErrInvalidCredentials):
		return msgInvalidCredentials, true
	case errors.Is(err, entities.ErrInvalidQuestionDraft):
		return err.Error(), true
	case errors.Is(err, api.ErrTimeout):
		return msgServiceTimeout, true
	case errors.Is(err, api.ErrNetwork):
		return msgServiceUnreachable, true
	case errors.As(err, &se):
		return se.Detail, true
	}

	return "", false
}
