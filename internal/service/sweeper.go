package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/emoquiz-bot/internal/storage"
)

// Abandoner closes sessions removed from storage.
type Abandoner interface {
	Abandon(removed map[int64]*storage.ActiveQuiz)
}

// SessionSweeper periodically abandons sessions nobody has touched for a
// while, the same way a closed browser tab would.
type SessionSweeper struct {
	sessions  *storage.SessionStorage
	abandoner Abandoner
	idleTTL   time.Duration
	spec      string
	now       func() time.Time
	logger    *zap.Logger
}

func NewSessionSweeper(
	sessions *storage.SessionStorage,
	abandoner Abandoner,
	idleTTL time.Duration,
	spec string,
	logger *zap.Logger,
) *SessionSweeper {
	return &SessionSweeper{
		sessions:  sessions,
		abandoner: abandoner,
		idleTTL:   idleTTL,
		spec:      spec,
		now:       time.Now,
		logger:    logger,
	}
}

// Start runs the sweep on its cron schedule until ctx is done.
func (s *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(s.spec, func() { s.Sweep() }); err != nil {
		return err
	}

	c.Start()
	s.logger.Info("session sweeper started", zap.String("spec", s.spec), zap.Duration("idle_ttl", s.idleTTL))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}

// Sweep abandons idle sessions and returns how many were removed.
func (s *SessionSweeper) Sweep() int {
	removed := s.sessions.RemoveIdle(s.now().Add(-s.idleTTL))
	if len(removed) == 0 {
		return 0
	}

	s.abandoner.Abandon(removed)
	s.logger.Info("idle sessions abandoned", zap.Int("count", len(removed)))
	return len(removed)
}
