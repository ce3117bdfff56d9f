package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/service"
	"github.com/aliskhannn/emoquiz-bot/internal/session"
)

// Bot is the part of *tgbotapi.BotAPI used by the handler.
type Bot interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Sender sends messages and requests to Telegram.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type QuizRunner interface {
	Start(ctx context.Context, chatID int64, account *entities.Account, quizID int) error
	Select(ctx context.Context, chatID int64, label string) error
	Submit(ctx context.Context, chatID int64) error
	Retry(ctx context.Context, chatID int64) error
	Cancel(ctx context.Context, chatID int64) error
	ToggleCamera(ctx context.Context, chatID int64) (bool, error)
	Active(chatID int64) (session.Snapshot, string, bool)
}

type AuthService interface {
	Login(ctx context.Context, chatID int64, username, password string) (*entities.Account, error)
	AdminLogin(ctx context.Context, chatID int64, email, password string) (*entities.Account, error)
	Logout(ctx context.Context, chatID int64) error
	Account(ctx context.Context, chatID int64) (*entities.Account, error)
}

type AuthoringService interface {
	ListQuizzes(ctx context.Context, account *entities.Account) ([]entities.Quiz, error)
	CreateQuiz(ctx context.Context, account *entities.Account, title string, count int) (int, error)
	AddQuestion(ctx context.Context, account *entities.Account, quizID int, d entities.QuestionDraft) (service.QuestionProgress, error)
	DeleteQuiz(ctx context.Context, account *entities.Account, quizID int) error
	AnalyzeQuiz(ctx context.Context, account *entities.Account, quizID int) (*entities.AnalysisReport, error)
}

type RecommendationService interface {
	ForAccount(ctx context.Context, account *entities.Account) ([]entities.Recommendation, error)
}

// DraftStorage tracks chats that were asked to send a question.
type DraftStorage interface {
	Expect(chatID int64, quizID int)
	Take(chatID int64) (int, bool)
	Forget(chatID int64)
}
