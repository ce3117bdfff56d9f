package camera

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const maxFrameSize = 8 << 20

// SnapshotDevice fetches still frames from an HTTP snapshot URL, as exposed
// by most IP webcams.
type SnapshotDevice struct {
	url        string
	httpClient *http.Client
}

// NewSnapshotDevice returns a snapshot device with short timeouts, a slow
// camera must not hold up an answer submission.
func NewSnapshotDevice(url string) *SnapshotDevice {
	return &SnapshotDevice{
		url: url,
		httpClient: &http.Client{
			Timeout: 3 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   2 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConnsPerHost: 2,
			},
		},
	}
}

func (d *SnapshotDevice) Frame(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build snapshot request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: snapshot status %d", ErrCaptureUnavailable, resp.StatusCode)
	}

	frame, err := io.ReadAll(io.LimitReader(resp.Body, maxFrameSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read snapshot: %v", ErrCaptureUnavailable, err)
	}
	if len(frame) == 0 {
		return nil, ErrCaptureUnavailable
	}

	return frame, nil
}
