package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
)

// QuestionProgress reports how many questions a quiz has after an addition.
type QuestionProgress struct {
	QuestionID int
	Added      int // questions stored in the quiz, including the new one
	Target     int // question count set when the quiz was created
}

// Done reports whether the target number of questions has been reached.
func (p QuestionProgress) Done() bool {
	return p.Target > 0 && p.Added >= p.Target
}

// AuthoringService performs quiz administration for lecturers.
type AuthoringService struct {
	api    AuthoringAPI
	logger *zap.Logger
}

func NewAuthoringService(api AuthoringAPI, logger *zap.Logger) *AuthoringService {
	return &AuthoringService{api: api, logger: logger}
}

// ListQuizzes is available to every logged-in chat.
func (s *AuthoringService) ListQuizzes(ctx context.Context, account *entities.Account) ([]entities.Quiz, error) {
	if account == nil {
		return nil, ErrNotLoggedIn
	}
	return s.api.ListQuizzes(ctx)
}

func (s *AuthoringService) CreateQuiz(ctx context.Context, account *entities.Account, title string, count int) (int, error) {
	if err := requireAdmin(account); err != nil {
		return 0, err
	}
	if title == "" || count <= 0 {
		return 0, fmt.Errorf("%w: title and a positive question count are required", entities.ErrInvalidQuestionDraft)
	}

	id, err := s.api.CreateQuiz(ctx, title, count)
	if err != nil {
		return 0, err
	}

	s.logger.Info("quiz created",
		zap.Int("quiz_id", id),
		zap.String("lecturer_id", account.RemoteID),
		zap.Int("question_count", count),
	)
	return id, nil
}

// AddQuestion validates and stores a question, then reports the progress
// of the quiz towards its question count.
func (s *AuthoringService) AddQuestion(ctx context.Context, account *entities.Account, quizID int, d entities.QuestionDraft) (QuestionProgress, error) {
	if err := requireAdmin(account); err != nil {
		return QuestionProgress{}, err
	}
	if err := d.Validate(); err != nil {
		return QuestionProgress{}, err
	}

	id, err := s.api.AddQuestion(ctx, quizID, d)
	if err != nil {
		return QuestionProgress{}, err
	}

	progress := QuestionProgress{QuestionID: id}

	quiz, err := s.api.GetQuiz(ctx, quizID)
	if err != nil {
		s.logger.Warn("failed to reload quiz after adding a question",
			zap.Int("quiz_id", quizID),
			zap.Error(err),
		)
		return progress, nil
	}

	progress.Added = len(quiz.Questions)
	progress.Target = quiz.QuestionCount
	return progress, nil
}

func (s *AuthoringService) DeleteQuiz(ctx context.Context, account *entities.Account, quizID int) error {
	if err := requireAdmin(account); err != nil {
		return err
	}
	if err := s.api.DeleteQuiz(ctx, quizID); err != nil {
		return err
	}

	s.logger.Info("quiz deleted", zap.Int("quiz_id", quizID), zap.String("lecturer_id", account.RemoteID))
	return nil
}

// AnalyzeQuiz runs the emotion analysis of all answers to a quiz.
func (s *AuthoringService) AnalyzeQuiz(ctx context.Context, account *entities.Account, quizID int) (*entities.AnalysisReport, error) {
	if err := requireAdmin(account); err != nil {
		return nil, err
	}
	return s.api.AnalyzeQuiz(ctx, quizID)
}

func requireAdmin(account *entities.Account) error {
	if account == nil {
		return ErrNotLoggedIn
	}
	if !account.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
