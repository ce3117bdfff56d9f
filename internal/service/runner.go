package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/emoquiz-bot/internal/camera"
	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/session"
	"github.com/aliskhannn/emoquiz-bot/internal/storage"
)

// QuizRunner drives answer sessions: it owns the per-chat session and camera
// switch and sequences capture and upload of every answer.
type QuizRunner struct {
	api       QuizAPI
	collector FrameCollector
	sessions  *storage.SessionStorage
	cameras   CameraSettings
	device    camera.Device
	view      SessionView
	observer  SessionObserver
	frames    int
	logger    *zap.Logger
}

type RunnerOption func(*QuizRunner)

// WithSessionObserver registers an observer of session lifecycle events.
func WithSessionObserver(o SessionObserver) RunnerOption {
	return func(r *QuizRunner) { r.observer = o }
}

// WithFrames sets the number of frames captured per answer.
func WithFrames(n int) RunnerOption {
	return func(r *QuizRunner) { r.frames = n }
}

// NewQuizRunner creates a new quiz runner.
func NewQuizRunner(
	api QuizAPI,
	collector FrameCollector,
	sessions *storage.SessionStorage,
	cameras CameraSettings,
	device camera.Device,
	view SessionView,
	logger *zap.Logger,
	opts ...RunnerOption,
) *QuizRunner {
	r := &QuizRunner{
		api:       api,
		collector: collector,
		sessions:  sessions,
		cameras:   cameras,
		device:    device,
		view:      view,
		observer:  nopObserver{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start loads quizID and opens a new session for the chat. A session already
// running in the chat is abandoned.
func (r *QuizRunner) Start(ctx context.Context, chatID int64, account *entities.Account, quizID int) error {
	if account == nil {
		return ErrNotLoggedIn
	}
	if !account.IsStudent() {
		return ErrForbidden
	}

	quiz, err := r.api.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if len(quiz.Questions) == 0 {
		return ErrEmptyQuiz
	}

	enabled, err := r.cameras.CameraEnabled(ctx, chatID)
	if err != nil {
		r.logger.Warn("failed to read camera preference, capturing by default",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		enabled = true
	}

	aq := &storage.ActiveQuiz{
		Camera:  camera.NewSwitch(r.device, enabled),
		Account: *account,
		Title:   quiz.Title,
	}

	sess, err := session.New(quiz.ID, quiz.Questions, session.WithListener(func(snap session.Snapshot) {
		if snap.State != session.Complete {
			r.view.ShowSession(chatID, aq.Title, snap)
		}
	}))
	if err != nil {
		return err
	}
	aq.Session = sess

	if prev := r.sessions.Store(chatID, aq); prev != nil {
		prev.Session.Close()
		r.observer.SessionAbandoned()
	}
	r.observer.SessionStarted()

	r.logger.Info("quiz session started",
		zap.Int64("chat_id", chatID),
		zap.Int("quiz_id", quiz.ID),
		zap.Stringer("session_id", sess.ID()),
		zap.Int("questions", len(quiz.Questions)),
		zap.Bool("camera", enabled),
	)

	r.view.ShowSession(chatID, aq.Title, sess.Snapshot())
	return nil
}

// Select sets the choice for the current question.
func (r *QuizRunner) Select(_ context.Context, chatID int64, label string) error {
	aq, err := r.active(chatID)
	if err != nil {
		return err
	}
	return aq.Session.Select(label)
}

// Submit sends the selected answer together with the frames captured for it.
// An upload failure is not returned; it moves the session to Failed and is
// shown through the view. Returned errors are refusals that changed nothing.
func (r *QuizRunner) Submit(ctx context.Context, chatID int64) error {
	aq, err := r.active(chatID)
	if err != nil {
		return err
	}

	attempt, err := aq.Session.BeginSubmit()
	if err != nil {
		return err
	}

	started := time.Now()
	batch := r.collector.Collect(ctx, aq.Camera, r.frames)
	sub := entities.NewSubmission(
		aq.Session.QuizID(),
		aq.Account.RemoteID,
		attempt.Question,
		attempt.Selected,
		attempt.Elapsed,
		batch,
	)

	err = r.api.SubmitAnswer(ctx, sub)
	r.observer.AnswerSubmitted(err, time.Since(started))

	log := r.logger.With(
		zap.Int64("chat_id", chatID),
		zap.Stringer("session_id", aq.Session.ID()),
		zap.Int("question_id", sub.QuestionID),
		zap.Int("frames", batch.Len()),
	)
	if err != nil {
		log.Warn("answer submission failed", zap.Error(err))
	} else {
		log.Debug("answer submitted", zap.Int("time_taken", sub.TimeTaken))
	}

	if !aq.Session.Resolve(attempt, err) {
		return nil
	}

	r.view.ShowCompletion(chatID, aq.Title, aq.Session.Completion())

	r.sessions.Delete(chatID, aq)
	r.observer.SessionCompleted()
	log.Info("quiz session completed")
	return nil
}

// Retry resubmits the answer of a failed attempt. The selected choice and
// the question are kept, so this is a new submit of the same answer.
func (r *QuizRunner) Retry(ctx context.Context, chatID int64) error {
	return r.Submit(ctx, chatID)
}

// Cancel abandons the running session of the chat. An upload in flight
// finishes but its result is discarded.
func (r *QuizRunner) Cancel(_ context.Context, chatID int64) error {
	aq := r.sessions.Delete(chatID, nil)
	if aq == nil {
		return ErrNoActiveQuiz
	}
	r.abandon(chatID, aq)
	return nil
}

// Abandon closes sessions removed by the idle sweep.
func (r *QuizRunner) Abandon(removed map[int64]*storage.ActiveQuiz) {
	for chatID, aq := range removed {
		r.abandon(chatID, aq)
	}
}

func (r *QuizRunner) abandon(chatID int64, aq *storage.ActiveQuiz) {
	aq.Session.Close()
	r.observer.SessionAbandoned()
	r.logger.Info("quiz session abandoned",
		zap.Int64("chat_id", chatID),
		zap.Stringer("session_id", aq.Session.ID()),
	)
	r.view.ShowAbandoned(chatID, aq.Title)
}

// ToggleCamera flips the camera preference of the chat and applies it to the
// running session, if any. It returns the new preference.
func (r *QuizRunner) ToggleCamera(ctx context.Context, chatID int64) (bool, error) {
	enabled, err := r.cameras.CameraEnabled(ctx, chatID)
	if err != nil {
		return false, err
	}
	enabled = !enabled

	if err := r.cameras.SetCameraEnabled(ctx, chatID, enabled); err != nil {
		return false, err
	}

	if aq, ok := r.sessions.Get(chatID); ok {
		aq.Camera.SetEnabled(enabled)
	}
	return enabled, nil
}

// Active returns the session snapshot and title of the chat's running quiz.
func (r *QuizRunner) Active(chatID int64) (session.Snapshot, string, bool) {
	aq, ok := r.sessions.Get(chatID)
	if !ok {
		return session.Snapshot{}, "", false
	}
	return aq.Session.Snapshot(), aq.Title, true
}

func (r *QuizRunner) active(chatID int64) (*storage.ActiveQuiz, error) {
	aq, ok := r.sessions.Get(chatID)
	if !ok {
		return nil, ErrNoActiveQuiz
	}
	r.sessions.Touch(chatID)
	return aq, nil
}
