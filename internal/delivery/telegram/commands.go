package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/emoquiz-bot/internal/service"
)

// Commands is the command list registered with Telegram.
var Commands = []tgbotapi.BotCommand{
	{Command: "login", Description: "Log in as a student"},
	{Command: "admin", Description: "Log in as a lecturer"},
	{Command: "quizzes", Description: "List quizzes"},
	{Command: "quiz", Description: "Start a quiz (usage: /quiz 3)"},
	{Command: "camera", Description: "Turn frame capture on or off"},
	{Command: "cancel", Description: "Leave the running quiz"},
	{Command: "recommendations", Description: "Your results and recommendations"},
	{Command: "logout", Description: "Log out"},
	{Command: "help", Description: "Help"},
}

func (h *Handler) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	args := m.CommandArguments()

	var fn HandlerFunc
	switch m.Command() {
	case "start", "help":
		fn = h.handleHelp()
	case "login":
		fn = h.handleLogin(args, m.MessageID, false)
	case "admin":
		fn = h.handleLogin(args, m.MessageID, true)
	case "logout":
		fn = h.handleLogout()
	case "quizzes":
		fn = h.handleQuizzes()
	case "quiz":
		fn = h.handleQuiz(args)
	case "camera":
		fn = h.handleCamera()
	case "cancel":
		fn = h.handleCancel()
	case "recommendations", "results":
		fn = h.handleRecommendations()
	case "newquiz":
		fn = h.handleNewQuiz(args)
	case "addquestion":
		fn = h.handleAddQuestion(args)
	case "deletequiz":
		fn = h.handleDeleteQuiz(args)
	case "analyze":
		fn = h.handleAnalyze(args)
	default:
		h.sendText(chatID, msgUnknownCommand)
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgHelp))
	}
}

// handleLogin logs the chat in. The command message carries a password, so
// it is deleted before anything else.
func (h *Handler) handleLogin(args string, messageID int, admin bool) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.request(tgbotapi.NewDeleteMessage(chatID, messageID))

		fields := strings.Fields(args)
		if len(fields) != 2 {
			if admin {
				return h.send(newPlainMessage(chatID, msgUsageAdmin))
			}
			return h.send(newPlainMessage(chatID, msgUsageLogin))
		}

		login := h.authService.Login
		if admin {
			login = h.authService.AdminLogin
		}

		account, err := login(ctx, chatID, fields[0], fields[1])
		if err != nil {
			return err
		}

		name := account.Name
		if name == "" {
			name = fields[0]
		}
		text := md("👋 Welcome, ") + bold(name) + md("!")
		if account.IsAdmin() {
			text += md("\n\nYou are logged in as a lecturer. See /help for quiz authoring commands.")
		} else {
			text += md("\n\nPick a quiz with /quizzes.")
		}
		return h.send(newMessage(chatID, text))
	}
}

func (h *Handler) handleLogout() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.runner.Cancel(ctx, chatID); err != nil && !errors.Is(err, service.ErrNoActiveQuiz) {
			return err
		}
		h.drafts.Forget(chatID)

		if err := h.authService.Logout(ctx, chatID); err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, msgLoggedOut))
	}
}

func (h *Handler) handleQuizzes() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		account, err := h.authService.Account(ctx, chatID)
		if err != nil {
			return err
		}

		quizzes, err := h.authoring.ListQuizzes(ctx, account)
		if err != nil {
			return err
		}
		if len(quizzes) == 0 {
			return h.send(newPlainMessage(chatID, msgNoQuizzes))
		}

		msg := newMessage(chatID, formatQuizList(quizzes))
		if account.IsStudent() {
			if kb := buildQuizListKeyboard(quizzes); kb != nil {
				msg.ReplyMarkup = kb
			}
		}
		return h.send(msg)
	}
}

func (h *Handler) handleQuiz(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quizID, ok := parseID(args)
		if !ok {
			return h.send(newPlainMessage(chatID, msgUsageQuiz))
		}
		return h.startQuiz(ctx, chatID, quizID)
	}
}

func (h *Handler) startQuiz(ctx context.Context, chatID int64, quizID int) error {
	account, err := h.authService.Account(ctx, chatID)
	if err != nil {
		return err
	}
	return h.runner.Start(ctx, chatID, account, quizID)
}

func (h *Handler) handleCamera() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		enabled, err := h.runner.ToggleCamera(ctx, chatID)
		if err != nil {
			return err
		}
		if enabled {
			return h.send(newPlainMessage(chatID, msgCameraOn))
		}
		return h.send(newPlainMessage(chatID, msgCameraOff))
	}
}

func (h *Handler) handleCancel() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.runner.Cancel(ctx, chatID)
	}
}

func (h *Handler) handleRecommendations() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		account, err := h.authService.Account(ctx, chatID)
		if err != nil {
			return err
		}

		recs, err := h.recommendations.ForAccount(ctx, account)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			return h.send(newPlainMessage(chatID, msgNoRecommendation))
		}
		return h.send(newMessage(chatID, formatRecommendations(recs)))
	}
}

// handleText handles plain messages: a pending question draft, or an
// option label typed instead of pressed.
func (h *Handler) handleText(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if quizID, ok := h.drafts.Take(chatID); ok {
			return h.addQuestion(ctx, chatID, quizID, text)
		}

		snap, _, ok := h.runner.Active(chatID)
		label := strings.ToUpper(strings.TrimSpace(text))
		if ok && snap.Question != nil && snap.Question.Options.Has(label) {
			return h.runner.Select(ctx, chatID, label)
		}

		return h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
