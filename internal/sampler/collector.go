// Package sampler collects the camera frames attached to an answer.
package sampler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/emoquiz-bot/internal/camera"
	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
)

const (
	DefaultCount    = 3
	DefaultInterval = time.Second
)

// Observer is notified about every capture attempt.
type Observer interface {
	FrameCaptured()
	FrameSkipped()
}

type nopObserver struct{}

func (nopObserver) FrameCaptured() {}
func (nopObserver) FrameSkipped()  {}

// Collector takes a fixed number of frames per answered question. Capture is
// best-effort: failed attempts are logged and skipped.
type Collector struct {
	interval time.Duration
	logger   *zap.Logger
	observer Observer
	sleep    func(time.Duration)
}

type Option func(*Collector)

// WithObserver reports capture outcomes, e.g. to metrics.
func WithObserver(o Observer) Option {
	return func(c *Collector) { c.observer = o }
}

// WithSleep replaces the delay function, used by tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Collector) { c.sleep = sleep }
}

func NewCollector(interval time.Duration, logger *zap.Logger, opts ...Option) *Collector {
	if interval < 0 {
		interval = DefaultInterval
	}

	c := &Collector{
		interval: interval,
		logger:   logger,
		observer: nopObserver{},
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect makes exactly target capture attempts on src, separated by the
// collector interval, and returns the frames that succeeded. A non-positive
// target means DefaultCount.
func (c *Collector) Collect(ctx context.Context, src camera.Source, target int) entities.CaptureBatch {
	if target <= 0 {
		target = DefaultCount
	}

	batch := entities.CaptureBatch{Frames: make([][]byte, 0, target)}

	for i := range target {
		if i > 0 {
			c.sleep(c.interval)
		}

		frame, err := src.Capture(ctx)
		if err != nil {
			c.observer.FrameSkipped()
			c.logger.Warn("frame capture skipped",
				zap.Int("frame", i),
				zap.Bool("camera_enabled", src.Enabled()),
				zap.Error(err),
			)
			continue
		}

		c.observer.FrameCaptured()
		batch.Frames = append(batch.Frames, frame)
	}

	c.logger.Debug("frames collected",
		zap.Int("target", target),
		zap.Int("captured", batch.Len()),
	)

	return batch
}
