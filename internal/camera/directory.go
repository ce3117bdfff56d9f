package camera

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var frameExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// DirectoryDevice replays the image files of a directory in name order,
// wrapping around at the end. Files added later are picked up on the next
// listing.
type DirectoryDevice struct {
	dir string

	mu   sync.Mutex
	next int
}

func NewDirectoryDevice(dir string) *DirectoryDevice {
	return &DirectoryDevice{dir: dir}
}

func (d *DirectoryDevice) Frame(_ context.Context) ([]byte, error) {
	files, err := d.list()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrCaptureUnavailable
	}

	d.mu.Lock()
	name := files[d.next%len(files)]
	d.next++
	d.mu.Unlock()

	frame, err := os.ReadFile(filepath.Join(d.dir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}
	if len(frame) == 0 {
		return nil, ErrCaptureUnavailable
	}

	return frame, nil
}

func (d *DirectoryDevice) list() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if frameExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}
