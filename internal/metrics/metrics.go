// Package metrics exposes bot activity to Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aliskhannn/emoquiz-bot/internal/api"
)

var (
	// Capture attempts by outcome
	framesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emoquiz_capture_frames_total",
			Help: "Total number of frame capture attempts",
		},
		[]string{"status"}, // captured/skipped
	)

	// Answer uploads by outcome
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emoquiz_submissions_total",
			Help: "Total number of answer submissions",
		},
		[]string{"status"}, // ok/timeout/network/server_error
	)

	// Capture plus upload of one answer
	submissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "emoquiz_submission_duration_seconds",
			Help:    "Time spent capturing and uploading one answer",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "emoquiz_active_sessions_current",
			Help: "Current number of running quiz sessions",
		},
	)

	sessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emoquiz_sessions_total",
			Help: "Total number of finished quiz sessions",
		},
		[]string{"outcome"}, // completed/abandoned
	)
)

// Recorder implements the capture and session observers.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (*Recorder) FrameCaptured() {
	framesTotal.WithLabelValues("captured").Inc()
}

func (*Recorder) FrameSkipped() {
	framesTotal.WithLabelValues("skipped").Inc()
}

func (*Recorder) SessionStarted() {
	activeSessions.Inc()
}

func (*Recorder) SessionCompleted() {
	activeSessions.Dec()
	sessionsTotal.WithLabelValues("completed").Inc()
}

func (*Recorder) SessionAbandoned() {
	activeSessions.Dec()
	sessionsTotal.WithLabelValues("abandoned").Inc()
}

func (*Recorder) AnswerSubmitted(err error, took time.Duration) {
	status := submissionStatus(err)
	submissionsTotal.WithLabelValues(status).Inc()
	submissionDuration.WithLabelValues(status).Observe(took.Seconds())
}

func submissionStatus(err error) string {
	var se *api.ServerError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, api.ErrTimeout):
		return "timeout"
	case errors.Is(err, api.ErrNetwork):
		return "network"
	case errors.As(err, &se):
		return "server_error"
	default:
		return "other"
	}
}
