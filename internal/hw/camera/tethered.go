package camera

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cjeanneret/CamGo/internal/log"
)

const (
	// DefaultCaptureTimeout bounds how long Capture waits for the camera
	// to drop a file after the shutter fired.
	DefaultCaptureTimeout = 10 * time.Second

	// settleDelay is the quiet period after the last write event before
	// the dropped file is considered complete.
	settleDelay = 250 * time.Millisecond
)

// TetheredService fires a Trigger and picks up the image the camera body
// writes into a watched drop directory.
type TetheredService struct {
	trigger Trigger
	dropDir string
	device  string
	timeout time.Duration
	settle  time.Duration

	// one shutter sequence at a time on the same lines
	mu sync.Mutex
}

// NewTetheredService returns a tethered backend. device is informational.
func NewTetheredService(trigger Trigger, dropDir, device string, timeout time.Duration) *TetheredService {
	if timeout <= 0 {
		timeout = DefaultCaptureTimeout
	}
	return &TetheredService{
		trigger: trigger,
		dropDir: dropDir,
		device:  device,
		timeout: timeout,
		settle:  settleDelay,
	}
}

// Name implements the optional naming used by Describe.
func (s *TetheredService) Name() string {
	if s.device != "" {
		return "tethered:" + s.device
	}
	return "tethered"
}

// Capture watches the drop directory, fires the shutter and returns the
// first image file that appears and then stays quiet for the settle delay.
func (s *TetheredService) Capture() (ImageData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return ImageData{}, acquisitionError(s.dropDir, fmt.Errorf("create watcher: %w", err))
	}
	defer w.Close()

	if err := w.Add(s.dropDir); err != nil {
		return ImageData{}, acquisitionError(s.dropDir, fmt.Errorf("watch drop dir: %w", err))
	}

	if err := s.trigger.Shoot(); err != nil {
		return ImageData{}, acquisitionError(s.dropDir, fmt.Errorf("trigger: %w", err))
	}

	deadline := time.NewTimer(s.timeout)
	defer deadline.Stop()

	var (
		candidate string
		settle    <-chan time.Time
	)
	events, errs := w.Events, w.Errors
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return ImageData{}, acquisitionError(s.dropDir, errors.New("watcher closed"))
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if MIMEForPath(ev.Name) == MIMEOctetStream {
				continue
			}
			candidate = ev.Name
			settle = time.After(s.settle)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			return ImageData{}, acquisitionError(s.dropDir, err)

		case <-settle:
			data, err := os.ReadFile(candidate)
			if err != nil {
				return ImageData{}, acquisitionError(candidate, err)
			}
			l := log.WithComponent("camera")
			l.Debug().
				Str(log.FieldEvent, "capture.dropped").
				Str(log.FieldPath, candidate).
				Int(log.FieldBytes, len(data)).
				Msg("tethered image received")
			return ImageData{Bytes: data, MIMEType: MIMEForPath(candidate)}, nil

		case <-deadline.C:
			return ImageData{}, acquisitionError(s.dropDir, fmt.Errorf("%w after %s", ErrCaptureTimeout, s.timeout))
		}
	}
}

// Save writes data to dest, same semantics as FileService.Save.
func (s *TetheredService) Save(data []byte, dest string) error {
	return writeFile(dest, data)
}
