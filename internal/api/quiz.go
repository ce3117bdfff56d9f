package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
)

var ErrQuizNotFound = errors.New("quiz not found")

// GetQuiz loads one quiz with its question set.
func (c *Client) GetQuiz(ctx context.Context, quizID int) (*entities.Quiz, error) {
	var quiz entities.Quiz
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/quizzes/%d", quizID),
	}, &quiz)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %d", ErrQuizNotFound, quizID)
		}
		return nil, fmt.Errorf("get quiz %d: %w", quizID, err)
	}

	if quiz.QuestionCount == 0 {
		quiz.QuestionCount = len(quiz.Questions)
	}

	return &quiz, nil
}

// ListQuizzes returns all quizzes.
func (c *Client) ListQuizzes(ctx context.Context) ([]entities.Quiz, error) {
	var quizzes []entities.Quiz
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/quizzes"}, &quizzes); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

// CreateQuiz creates an empty quiz that is expected to receive count
// questions and returns its ID.
func (c *Client) CreateQuiz(ctx context.Context, title string, count int) (int, error) {
	payload, err := json.Marshal(struct {
		Title         string `json:"title"`
		QuestionCount int    `json:"question_count"`
	}{Title: title, QuestionCount: count})
	if err != nil {
		return 0, fmt.Errorf("marshal quiz: %w", err)
	}

	var out struct {
		QuizID int `json:"quizId"`
	}
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/quizzes/",
		body:        bytes.NewReader(payload),
		contentType: "application/json",
	}, &out)
	if err != nil {
		return 0, fmt.Errorf("create quiz: %w", err)
	}

	return out.QuizID, nil
}

// AddQuestion appends a question to a quiz and returns the question ID.
func (c *Client) AddQuestion(ctx context.Context, quizID int, d entities.QuestionDraft) (int, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return 0, fmt.Errorf("marshal question: %w", err)
	}

	var out struct {
		QuestionID int `json:"questionId"`
	}
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/api/quizzes/%d/questions", quizID),
		body:        bytes.NewReader(payload),
		contentType: "application/json",
	}, &out)
	if err != nil {
		if IsNotFound(err) {
			return 0, fmt.Errorf("%w: %d", ErrQuizNotFound, quizID)
		}
		return 0, fmt.Errorf("add question to quiz %d: %w", quizID, err)
	}

	return out.QuestionID, nil
}

// DeleteQuiz removes a quiz.
func (c *Client) DeleteQuiz(ctx context.Context, quizID int) error {
	err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/api/quizzes/%d", quizID),
	}, nil)
	if err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("%w: %d", ErrQuizNotFound, quizID)
		}
		return fmt.Errorf("delete quiz %d: %w", quizID, err)
	}
	return nil
}

// AnalyzeQuiz asks the service to compute recommendations for everybody
// who answered the quiz.
func (c *Client) AnalyzeQuiz(ctx context.Context, quizID int) (*entities.AnalysisReport, error) {
	var report entities.AnalysisReport
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/api/quizzes/analyze/%d", quizID),
	}, &report)
	if err != nil {
		return nil, fmt.Errorf("analyze quiz %d: %w", quizID, err)
	}
	return &report, nil
}
