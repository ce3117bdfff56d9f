// Package camera provides still-frame sources for answer sampling.
package camera

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	// ErrCaptureUnavailable is returned when capture is disabled, the device
	// has not produced a frame yet, or it returned no data.
	ErrCaptureUnavailable = errors.New("capture unavailable")
	// ErrFrameEncoding is returned when a frame cannot be encoded as JPEG.
	ErrFrameEncoding = errors.New("frame encoding failed")
)

// Source is a camera as seen by an answer session.
type Source interface {
	Enabled() bool
	Capture(ctx context.Context) ([]byte, error)
}

// Device is a capture backend producing raw still frames.
type Device interface {
	Frame(ctx context.Context) ([]byte, error)
}

// NoDevice is used when no capture backend is configured.
type NoDevice struct{}

func (NoDevice) Frame(context.Context) ([]byte, error) {
	return nil, ErrCaptureUnavailable
}

// Shared serialises access to a device used by several chats.
type Shared struct {
	mu     sync.Mutex
	device Device
}

func NewShared(device Device) *Shared {
	return &Shared{device: device}
}

func (s *Shared) Frame(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device.Frame(ctx)
}

// Switch is a per-session Source with a user-visible on/off toggle.
// Toggling only affects later Capture calls.
type Switch struct {
	device  Device
	enabled atomic.Bool
}

func NewSwitch(device Device, enabled bool) *Switch {
	s := &Switch{device: device}
	s.enabled.Store(enabled)
	return s
}

func (s *Switch) Enabled() bool {
	return s.enabled.Load()
}

func (s *Switch) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
}

// Capture takes one still frame and returns it JPEG-encoded.
func (s *Switch) Capture(ctx context.Context) ([]byte, error) {
	if !s.Enabled() {
		return nil, ErrCaptureUnavailable
	}

	frame, err := s.device.Frame(ctx)
	if err != nil {
		return nil, err
	}
	if len(frame) == 0 {
		return nil, ErrCaptureUnavailable
	}

	return toJPEG(frame)
}

// NewDevice builds the capture backend named by backend.
func NewDevice(backend, snapshotURL, directory string) (Device, error) {
	switch backend {
	case "", "none":
		return NoDevice{}, nil
	case "snapshot":
		return NewSnapshotDevice(snapshotURL), nil
	case "directory":
		return NewDirectoryDevice(directory), nil
	default:
		return nil, fmt.Errorf("unknown capture backend %q", backend)
	}
}
