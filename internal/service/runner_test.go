package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/emoquiz-bot/internal/api"
	"github.com/aliskhannn/emoquiz-bot/internal/camera"
	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/session"
	"github.com/aliskhannn/emoquiz-bot/internal/storage"
)

const chatID int64 = 42

func testQuiz() *entities.Quiz {
	opts := entities.Options{{Label: "A", Text: "one"}, {Label: "B", Text: "two"}}
	return &entities.Quiz{
		ID:    7,
		Title: "Basics",
		Questions: []entities.Question{
			{ID: 1, Text: "Q1", Options: opts, CorrectAnswer: "A", Topic: "t1"},
			{ID: 2, Text: "Q2", Options: opts, CorrectAnswer: "A", Topic: "t2"},
		},
	}
}

func student() *entities.Account {
	return entities.NewAccount(chatID, entities.RoleStudent, "u-1", "Ann")
}

type runnerEnv struct {
	runner    *QuizRunner
	api       *fakeQuizAPI
	collector *fakeCollector
	cameras   *fakeCameras
	view      *fakeView
	sessions  *storage.SessionStorage
}

func newRunnerEnv(t *testing.T) *runnerEnv {
	t.Helper()
	env := &runnerEnv{
		api:       &fakeQuizAPI{quiz: testQuiz()},
		collector: &fakeCollector{frames: 3},
		cameras:   newFakeCameras(),
		view:      &fakeView{},
		sessions:  storage.NewSessionStorage(),
	}
	env.runner = NewQuizRunner(
		env.api,
		env.collector,
		env.sessions,
		env.cameras,
		camera.NoDevice{},
		env.view,
		zap.NewNop(),
		WithFrames(3),
	)
	return env
}

func TestRunnerCompletesQuiz(t *testing.T) {
	env := newRunnerEnv(t)
	ctx := context.Background()

	require.NoError(t, env.runner.Start(ctx, chatID, student(), 7))
	require.NoError(t, env.runner.Select(ctx, chatID, "B"))
	require.NoError(t, env.runner.Submit(ctx, chatID))
	require.NoError(t, env.runner.Select(ctx, chatID, "A"))
	require.NoError(t, env.runner.Submit(ctx, chatID))

	subs := env.api.submissions()
	require.Len(t, subs, 2)
	assert.Equal(t, 7, subs[0].QuizID)
	assert.Equal(t, "u-1", subs[0].UserID)
	assert.Equal(t, 1, subs[0].QuestionID)
	assert.Equal(t, "B", subs[0].SelectedAnswer)
	assert.False(t, subs[0].IsCorrect)
	assert.Equal(t, "t1", subs[0].Topic)
	assert.Equal(t, 3, subs[0].Images.Len())
	assert.True(t, subs[1].IsCorrect)
	assert.Equal(t, []int{3, 3}, env.collector.targets)

	require.Len(t, env.view.completions, 1)
	c := env.view.completions[0]
	assert.Equal(t, []string{"B", "A"}, c.UserAnswers)
	assert.Len(t, c.Questions, 2)
	assert.Equal(t, 1, c.Score())

	_, ok := env.sessions.Get(chatID)
	assert.False(t, ok, "completed session must be removed")
	assert.ErrorIs(t, env.runner.Submit(ctx, chatID), ErrNoActiveQuiz)
}

func TestRunnerStartRefusals(t *testing.T) {
	tests := []struct {
		name    string
		account *entities.Account
		quiz    *entities.Quiz
		quizID  int
		wantErr error
	}{
		{name: "not logged in", account: nil, quiz: testQuiz(), quizID: 7, wantErr: ErrNotLoggedIn},
		{
			name:    "admin",
			account: entities.NewAccount(chatID, entities.RoleAdmin, "l-1", "Lee"),
			quiz:    testQuiz(),
			quizID:  7,
			wantErr: ErrForbidden,
		},
		{name: "unknown quiz", account: student(), quiz: testQuiz(), quizID: 8, wantErr: api.ErrQuizNotFound},
		{name: "empty quiz", account: student(), quiz: &entities.Quiz{ID: 7}, quizID: 7, wantErr: ErrEmptyQuiz},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newRunnerEnv(t)
			env.api.quiz = tt.quiz

			err := env.runner.Start(context.Background(), chatID, tt.account, tt.quizID)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, env.sessions.Len())
		})
	}
}

func TestRunnerSubmitWithoutChoice(t *testing.T) {
	env := newRunnerEnv(t)
	ctx := context.Background()
	require.NoError(t, env.runner.Start(ctx, chatID, student(), 7))

	require.ErrorIs(t, env.runner.Submit(ctx, chatID), session.ErrNoChoice)
	assert.Empty(t, env.api.submissions())
}

func TestRunnerConcurrentSubmitIssuesOneCall(t *testing.T) {
	env := newRunnerEnv(t)
	env.api.entered = make(chan struct{})
	env.api.release = make(chan struct{})
	ctx := context.Background()

	require.NoError(t, env.runner.Start(ctx, chatID, student(), 7))
	require.NoError(t, env.runner.Select(ctx, chatID, "A"))

	done := make(chan error)
	go func() { done <- env.runner.Submit(ctx, chatID) }()
	<-env.api.entered

	assert.ErrorIs(t, env.runner.Submit(ctx, chatID), session.ErrSubmitInFlight)
	assert.ErrorIs(t, env.runner.Select(ctx, chatID, "B"), session.ErrSubmitInFlight)

	close(env.api.release)
	require.NoError(t, <-done)

	assert.Len(t, env.api.submissions(), 1)
	snap, _, ok := env.runner.Active(chatID)
	require.True(t, ok)
	assert.Equal(t, 1, snap.Index)
}

func TestRunnerFailureThenRetry(t *testing.T) {
	env := newRunnerEnv(t)
	env.api.errs = []error{&api.ServerError{StatusCode: 409, Detail: "Answer already recorded"}}
	ctx := context.Background()

	require.NoError(t, env.runner.Start(ctx, chatID, student(), 7))
	require.NoError(t, env.runner.Select(ctx, chatID, "B"))
	require.NoError(t, env.runner.Submit(ctx, chatID))

	last := env.view.last()
	assert.Equal(t, session.Failed, last.State)
	assert.Equal(t, 0, last.Index)
	assert.Equal(t, "B", last.Selected)
	var se *api.ServerError
	require.True(t, errors.As(last.LastError, &se))
	assert.Equal(t, "Answer already recorded", se.Detail)

	require.NoError(t, env.runner.Retry(ctx, chatID))

	last = env.view.last()
	assert.Equal(t, session.Answering, last.State)
	assert.Equal(t, 1, last.Index)
	assert.NoError(t, last.LastError)

	subs := env.api.submissions()
	require.Len(t, subs, 2)
	assert.Equal(t, subs[0].QuestionID, subs[1].QuestionID)
	assert.Equal(t, "B", subs[1].SelectedAnswer)

	assert.Equal(t, []session.State{
		session.Answering,  // start
		session.Answering,  // select
		session.Submitting, // submit
		session.Failed,
		session.Submitting, // retry
		session.Answering,  // next question
	}, env.view.states())
}

func TestRunnerCancelDuringSubmit(t *testing.T) {
	env := newRunnerEnv(t)
	env.api.entered = make(chan struct{})
	env.api.release = make(chan struct{})
	ctx := context.Background()

	require.NoError(t, env.runner.Start(ctx, chatID, student(), 7))
	require.NoError(t, env.runner.Select(ctx, chatID, "A"))

	done := make(chan error)
	go func() { done <- env.runner.Submit(ctx, chatID) }()
	<-env.api.entered

	require.NoError(t, env.runner.Cancel(ctx, chatID))
	shown := len(env.view.states())

	close(env.api.release)
	require.NoError(t, <-done)

	assert.Equal(t, shown, len(env.view.states()), "a closed session must not render")
	assert.Empty(t, env.view.completions)
	assert.Equal(t, []int64{chatID}, env.view.abandoned)
	assert.Equal(t, 0, env.sessions.Len())

	assert.ErrorIs(t, env.runner.Cancel(ctx, chatID), ErrNoActiveQuiz)
}

func TestRunnerRestartAbandonsPrevious(t *testing.T) {
	env := newRunnerEnv(t)
	ctx := context.Background()

	require.NoError(t, env.runner.Start(ctx, chatID, student(), 7))
	first, _ := env.sessions.Get(chatID)
	require.NoError(t, env.runner.Start(ctx, chatID, student(), 7))
	second, _ := env.sessions.Get(chatID)

	assert.True(t, first.Session.Closed())
	assert.False(t, second.Session.Closed())
	assert.NotEqual(t, first.Session.ID(), second.Session.ID())
}

func TestRunnerToggleCamera(t *testing.T) {
	env := newRunnerEnv(t)
	ctx := context.Background()

	require.NoError(t, env.runner.Start(ctx, chatID, student(), 7))
	aq, _ := env.sessions.Get(chatID)
	require.True(t, aq.Camera.Enabled())

	enabled, err := env.runner.ToggleCamera(ctx, chatID)
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.False(t, aq.Camera.Enabled())

	require.NoError(t, env.runner.Select(ctx, chatID, "A"))
	require.NoError(t, env.runner.Submit(ctx, chatID))

	subs := env.api.submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, 0, subs[0].Images.Len(), "disabled camera submits no frames")
	assert.Equal(t, session.Answering, env.view.last().State)

	enabled, err = env.runner.ToggleCamera(ctx, chatID)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestRunnerStartUsesStoredCameraPreference(t *testing.T) {
	env := newRunnerEnv(t)
	env.cameras.enabled[chatID] = false

	require.NoError(t, env.runner.Start(context.Background(), chatID, student(), 7))
	aq, _ := env.sessions.Get(chatID)
	assert.False(t, aq.Camera.Enabled())
}
