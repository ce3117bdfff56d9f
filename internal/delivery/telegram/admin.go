package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// handleNewQuiz creates a quiz: /newquiz <count> <title>.
func (h *Handler) handleNewQuiz(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		countStr, title, _ := strings.Cut(strings.TrimSpace(args), " ")
		count, err := strconv.Atoi(countStr)
		title = strings.TrimSpace(title)
		if err != nil || count <= 0 || title == "" {
			return h.send(newPlainMessage(chatID, msgUsageNewQuiz))
		}

		account, err := h.authService.Account(ctx, chatID)
		if err != nil {
			return err
		}

		quizID, err := h.authoring.CreateQuiz(ctx, account, title, count)
		if err != nil {
			return err
		}

		return h.send(newPlainMessage(chatID, fmt.Sprintf(
			"Quiz #%d %q created with room for %d questions. Add the first one with /addquestion %d.",
			quizID, title, count, quizID,
		)))
	}
}

// handleAddQuestion adds a question to a quiz. The question may follow the
// command on the next lines; otherwise the next message is used.
func (h *Handler) handleAddQuestion(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		first, rest, _ := strings.Cut(args, "\n")
		quizID, ok := parseID(first)
		if !ok {
			return h.send(newPlainMessage(chatID, msgUsageAddQuestion))
		}

		account, err := h.authService.Account(ctx, chatID)
		if err != nil {
			return err
		}
		if !account.IsAdmin() {
			return h.send(newPlainMessage(chatID, msgForbidden))
		}

		if strings.TrimSpace(rest) != "" {
			return h.addQuestion(ctx, chatID, quizID, rest)
		}

		h.drafts.Expect(chatID, quizID)
		return h.send(newPlainMessage(chatID, msgQuestionTemplate))
	}
}

func (h *Handler) addQuestion(ctx context.Context, chatID int64, quizID int, text string) error {
	draft, err := parseQuestionDraft(text)
	if err != nil {
		return err
	}

	account, err := h.authService.Account(ctx, chatID)
	if err != nil {
		return err
	}

	progress, err := h.authoring.AddQuestion(ctx, account, quizID, draft)
	if err != nil {
		return err
	}

	return h.send(newPlainMessage(chatID, formatQuestionProgress(quizID, progress)))
}

func (h *Handler) handleDeleteQuiz(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quizID, ok := parseID(args)
		if !ok {
			return h.send(newPlainMessage(chatID, msgUsageDeleteQuiz))
		}

		account, err := h.authService.Account(ctx, chatID)
		if err != nil {
			return err
		}

		if err := h.authoring.DeleteQuiz(ctx, account, quizID); err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, fmt.Sprintf("Quiz #%d deleted.", quizID)))
	}
}

func (h *Handler) handleAnalyze(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quizID, ok := parseID(args)
		if !ok {
			return h.send(newPlainMessage(chatID, msgUsageAnalyze))
		}

		account, err := h.authService.Account(ctx, chatID)
		if err != nil {
			return err
		}

		report, err := h.authoring.AnalyzeQuiz(ctx, account, quizID)
		if err != nil {
			return err
		}
		return h.send(newMessage(chatID, formatAnalysis(quizID, report)))
	}
}
