package camera

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDevice struct {
	frame []byte
	err   error
	calls int
}

func (d *stubDevice) Frame(context.Context) ([]byte, error) {
	d.calls++
	return d.frame, d.err
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func jpegFrame(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(), nil))
	return buf.Bytes()
}

func pngFrame(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func TestSwitchDisabled(t *testing.T) {
	dev := &stubDevice{frame: jpegFrame(t)}
	sw := NewSwitch(dev, false)

	_, err := sw.Capture(context.Background())
	require.ErrorIs(t, err, ErrCaptureUnavailable)
	assert.Zero(t, dev.calls, "disabled switch must not touch the device")

	sw.SetEnabled(true)
	frame, err := sw.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dev.frame, frame)
}

func TestSwitchEmptyFrame(t *testing.T) {
	sw := NewSwitch(&stubDevice{frame: []byte{}}, true)

	_, err := sw.Capture(context.Background())
	require.ErrorIs(t, err, ErrCaptureUnavailable)
}

func TestSwitchPassesDeviceError(t *testing.T) {
	boom := errors.New("boom")
	sw := NewSwitch(&stubDevice{err: boom}, true)

	_, err := sw.Capture(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestSwitchReencodesPNG(t *testing.T) {
	sw := NewSwitch(&stubDevice{frame: pngFrame(t)}, true)

	frame, err := sw.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", http.DetectContentType(frame))
}

func TestSwitchRejectsGarbage(t *testing.T) {
	sw := NewSwitch(&stubDevice{frame: []byte("definitely not an image")}, true)

	_, err := sw.Capture(context.Background())
	require.ErrorIs(t, err, ErrFrameEncoding)
}

func TestNoDevice(t *testing.T) {
	sw := NewSwitch(NoDevice{}, true)

	_, err := sw.Capture(context.Background())
	require.ErrorIs(t, err, ErrCaptureUnavailable)
}

func TestDirectoryDeviceCycles(t *testing.T) {
	dir := t.TempDir()
	first := jpegFrame(t)
	second := append(jpegFrame(t), 0x00)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), second, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), first, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o600))

	dev := NewDirectoryDevice(dir)
	ctx := context.Background()

	got := make([][]byte, 0, 3)
	for range 3 {
		frame, err := dev.Frame(ctx)
		require.NoError(t, err)
		got = append(got, frame)
	}

	assert.Equal(t, [][]byte{first, second, first}, got)
}

func TestDirectoryDeviceEmpty(t *testing.T) {
	dev := NewDirectoryDevice(t.TempDir())

	_, err := dev.Frame(context.Background())
	require.ErrorIs(t, err, ErrCaptureUnavailable)
}

func TestSnapshotDevice(t *testing.T) {
	frame := jpegFrame(t)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "ok",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "image/jpeg")
				_, _ = w.Write(frame)
			},
		},
		{
			name: "camera not ready",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantErr: ErrCaptureUnavailable,
		},
		{
			name:    "empty body",
			handler: func(http.ResponseWriter, *http.Request) {},
			wantErr: ErrCaptureUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			got, err := NewSnapshotDevice(srv.URL).Frame(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, frame, got)
		})
	}
}

func TestSnapshotDeviceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewSnapshotDevice(url).Frame(context.Background())
	require.ErrorIs(t, err, ErrCaptureUnavailable)
}

func TestNewDevice(t *testing.T) {
	dev, err := NewDevice("none", "", "")
	require.NoError(t, err)
	assert.IsType(t, NoDevice{}, dev)

	dev, err = NewDevice("directory", "", t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &DirectoryDevice{}, dev)

	_, err = NewDevice("v4l2", "", "")
	require.Error(t, err)
}
