package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/emoquiz-bot/internal/api"
	"github.com/aliskhannn/emoquiz-bot/internal/camera"
	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/session"
)

// QuizAPI is the part of the quiz service used while taking a quiz.
type QuizAPI interface {
	GetQuiz(ctx context.Context, quizID int) (*entities.Quiz, error)
	SubmitAnswer(ctx context.Context, s entities.Submission) error
}

// AuthAPI authenticates students and admins.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*api.Identity, error)
	AdminLogin(ctx context.Context, email, password string) (*api.Identity, error)
}

// AuthoringAPI is the quiz administration part of the quiz service.
type AuthoringAPI interface {
	GetQuiz(ctx context.Context, quizID int) (*entities.Quiz, error)
	ListQuizzes(ctx context.Context) ([]entities.Quiz, error)
	CreateQuiz(ctx context.Context, title string, count int) (int, error)
	AddQuestion(ctx context.Context, quizID int, d entities.QuestionDraft) (int, error)
	DeleteQuiz(ctx context.Context, quizID int) error
	AnalyzeQuiz(ctx context.Context, quizID int) (*entities.AnalysisReport, error)
}

// RecommendationAPI returns analysis results of a student.
type RecommendationAPI interface {
	Recommendations(ctx context.Context, userID string) ([]entities.Recommendation, error)
}

// FrameCollector samples frames from a camera for one answer.
type FrameCollector interface {
	Collect(ctx context.Context, src camera.Source, target int) entities.CaptureBatch
}

// CompletionHandler receives the result of a finished session.
type CompletionHandler interface {
	ShowCompletion(chatID int64, title string, c entities.Completion)
}

// SessionView renders session state to the chat that owns it.
type SessionView interface {
	CompletionHandler
	ShowSession(chatID int64, title string, snap session.Snapshot)
	ShowAbandoned(chatID int64, title string)
}

// SessionObserver receives session lifecycle events, e.g. for metrics.
type SessionObserver interface {
	SessionStarted()
	SessionCompleted()
	SessionAbandoned()
	AnswerSubmitted(err error, took time.Duration)
}

// AccountRepository persists chat account links.
type AccountRepository interface {
	Upsert(ctx context.Context, a *entities.Account) error
	GetByChatID(ctx context.Context, chatID int64) (*entities.Account, error)
	Delete(ctx context.Context, chatID int64) error
}

// SettingsRepository persists chat settings.
type SettingsRepository interface {
	Create(ctx context.Context, chatID int64) error
	GetByChatID(ctx context.Context, chatID int64) (*entities.ChatSettings, error)
	UpdateCameraEnabled(ctx context.Context, chatID int64, enabled bool) error
}

// Transactor runs fn inside a database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// CameraSettings reads and stores the camera preference of a chat.
type CameraSettings interface {
	CameraEnabled(ctx context.Context, chatID int64) (bool, error)
	SetCameraEnabled(ctx context.Context, chatID int64, enabled bool) error
}

type nopObserver struct{}

func (nopObserver) SessionStarted()                      {}
func (nopObserver) SessionCompleted()                    {}
func (nopObserver) SessionAbandoned()                    {}
func (nopObserver) AnswerSubmitted(error, time.Duration) {}
