package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot             Bot
	logger          *zap.Logger
	runner          QuizRunner
	authService     AuthService
	authoring       AuthoringService
	recommendations RecommendationService
	drafts          DraftStorage
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	runner QuizRunner,
	authService AuthService,
	authoring AuthoringService,
	recommendations RecommendationService,
	drafts DraftStorage,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		runner:          runner,
		authService:     authService,
		authoring:       authoring,
		recommendations: recommendations,
		drafts:          drafts,
	}
}

// Run handles updates until ctx is done. Every update runs in its own
// goroutine so a slow answer upload does not hold up other chats.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.handleUpdate(ctx, update)
			}()
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while handling update",
				zap.Int("update_id", update.UpdateID),
				zap.Any("panic", r),
			)
		}
	}()

	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.Bool("command", update.Message.IsCommand()),
	)

	if update.Message.IsCommand() {
		h.handleCommand(ctx, update.Message)
		return
	}

	_ = h.withErrorHandling(h.handleText(update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendText(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Debug("telegram request failed", zap.Error(err))
	}
}
