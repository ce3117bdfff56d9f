package service

import (
	"context"
	"sync"

	"github.com/aliskhannn/emoquiz-bot/internal/api"
	"github.com/aliskhannn/emoquiz-bot/internal/camera"
	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/emoquiz-bot/internal/session"
)

type fakeQuizAPI struct {
	mu      sync.Mutex
	quiz    *entities.Quiz
	quizErr error
	errs    []error // returned by successive SubmitAnswer calls
	calls   []entities.Submission

	entered chan struct{} // signalled when SubmitAnswer starts, if set
	release chan struct{} // SubmitAnswer waits on it, if set
}

func (f *fakeQuizAPI) GetQuiz(_ context.Context, quizID int) (*entities.Quiz, error) {
	if f.quizErr != nil {
		return nil, f.quizErr
	}
	if f.quiz == nil || f.quiz.ID != quizID {
		return nil, api.ErrQuizNotFound
	}
	return f.quiz, nil
}

func (f *fakeQuizAPI) SubmitAnswer(_ context.Context, s entities.Submission) error {
	f.mu.Lock()
	f.calls = append(f.calls, s)
	var err error
	if len(f.errs) > 0 {
		err = f.errs[0]
		f.errs = f.errs[1:]
	}
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return err
}

func (f *fakeQuizAPI) submissions() []entities.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entities.Submission(nil), f.calls...)
}

type fakeCollector struct {
	mu      sync.Mutex
	frames  int
	targets []int
}

func (f *fakeCollector) Collect(_ context.Context, src camera.Source, target int) entities.CaptureBatch {
	f.mu.Lock()
	f.targets = append(f.targets, target)
	f.mu.Unlock()

	if !src.Enabled() {
		return entities.CaptureBatch{}
	}
	var b entities.CaptureBatch
	for i := 0; i < f.frames; i++ {
		b.Frames = append(b.Frames, []byte{0xff, 0xd8, byte(i)})
	}
	return b
}

type fakeCameras struct {
	mu      sync.Mutex
	enabled map[int64]bool
	err     error
}

func newFakeCameras() *fakeCameras {
	return &fakeCameras{enabled: make(map[int64]bool)}
}

func (f *fakeCameras) CameraEnabled(_ context.Context, chatID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	enabled, ok := f.enabled[chatID]
	if !ok {
		return true, nil
	}
	return enabled, nil
}

func (f *fakeCameras) SetCameraEnabled(_ context.Context, chatID int64, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled[chatID] = enabled
	return nil
}

type fakeView struct {
	mu          sync.Mutex
	snapshots   []session.Snapshot
	completions []entities.Completion
	abandoned   []int64
}

func (f *fakeView) ShowSession(_ int64, _ string, snap session.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, snap)
}

func (f *fakeView) ShowCompletion(_ int64, _ string, c entities.Completion) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completions = append(f.completions, c)
}

func (f *fakeView) ShowAbandoned(chatID int64, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.abandoned = append(f.abandoned, chatID)
}

func (f *fakeView) states() []session.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]session.State, 0, len(f.snapshots))
	for _, s := range f.snapshots {
		out = append(out, s.State)
	}
	return out
}

func (f *fakeView) last() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshots[len(f.snapshots)-1]
}

type fakeAccounts struct {
	accounts map[int64]*entities.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{accounts: make(map[int64]*entities.Account)}
}

func (f *fakeAccounts) Upsert(_ context.Context, a *entities.Account) error {
	f.accounts[a.ChatID] = a
	return nil
}

func (f *fakeAccounts) GetByChatID(_ context.Context, chatID int64) (*entities.Account, error) {
	a, ok := f.accounts[chatID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeAccounts) Delete(_ context.Context, chatID int64) error {
	if _, ok := f.accounts[chatID]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(f.accounts, chatID)
	return nil
}

type fakeSettings struct {
	settings map[int64]*entities.ChatSettings
	created  int
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{settings: make(map[int64]*entities.ChatSettings)}
}

func (f *fakeSettings) Create(_ context.Context, chatID int64) error {
	f.created++
	f.settings[chatID] = entities.NewChatSettings(chatID)
	return nil
}

func (f *fakeSettings) GetByChatID(_ context.Context, chatID int64) (*entities.ChatSettings, error) {
	s, ok := f.settings[chatID]
	if !ok {
		return nil, repository.ErrSettingsNotFound
	}
	return s, nil
}

func (f *fakeSettings) UpdateCameraEnabled(_ context.Context, chatID int64, enabled bool) error {
	s, ok := f.settings[chatID]
	if !ok {
		return repository.ErrSettingsNotFound
	}
	s.CameraEnabled = enabled
	return nil
}
