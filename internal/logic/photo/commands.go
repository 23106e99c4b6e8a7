// Package photo is the command layer between the transports (web, MCP,
// CLI) and the camera capability. It owns the single camera.Service for
// the process lifetime.
package photo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cjeanneret/CamGo/internal/hw/camera"
	"github.com/cjeanneret/CamGo/internal/log"
	"github.com/cjeanneret/CamGo/internal/metrics"
)

// Saved describes a photo written by SavePhoto.
type Saved struct {
	Path     string `json:"path"`
	MIMEType string `json:"mime_type"`
	Size     int    `json:"size"`
}

// Commands is the shared application state. It is immutable after
// NewCommands returns, so it is safe for concurrent use without locks.
type Commands struct {
	camera camera.Service
	dir    string
	now    func() time.Time
	home   func() (string, error)
}

// Option customizes Commands at construction.
type Option func(*Commands)

// WithDir sets the save directory. Empty keeps the default
// <home>/Pictures/camgo.
func WithDir(dir string) Option {
	return func(c *Commands) { c.dir = dir }
}

// WithClock replaces time.Now for file naming.
func WithClock(now func() time.Time) Option {
	return func(c *Commands) { c.now = now }
}

// WithHomeDir replaces os.UserHomeDir for default directory resolution.
func WithHomeDir(home func() (string, error)) Option {
	return func(c *Commands) { c.home = home }
}

// NewCommands wires the camera backend into the command layer.
func NewCommands(cam camera.Service, opts ...Option) *Commands {
	c := &Commands{
		camera: cam,
		now:    time.Now,
		home:   os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Backend returns the name of the active camera backend.
func (c *Commands) Backend() string {
	return camera.Describe(c.camera)
}

// TakePhoto captures a photo from the backend.
func (c *Commands) TakePhoto(ctx context.Context) (camera.ImageData, error) {
	logger := log.FromContext(ctx, "photo")

	img, err := c.camera.Capture()
	metrics.RecordCapture(err == nil, len(img.Bytes))
	if err != nil {
		logger.Error().Err(err).Str(log.FieldEvent, "take_photo.failed").Msg("capture failed")
		return camera.ImageData{}, err
	}

	logger.Debug().
		Str(log.FieldEvent, "take_photo.ok").
		Str(log.FieldMIMEType, img.MIMEType).
		Int(log.FieldBytes, len(img.Bytes)).
		Msg("photo captured")
	return img, nil
}

// SaveDir resolves the directory photos are written to.
func (c *Commands) SaveDir() (string, error) {
	if c.dir != "" {
		return c.dir, nil
	}
	home, err := c.home()
	if err != nil {
		return "", &camera.Error{Kind: camera.KindPersistence, Op: "save", Err: fmt.Errorf("resolve home directory: %w", err)}
	}
	return filepath.Join(home, PicturesDir, DefaultSubdir), nil
}

// SavePhoto stores data as <dir>/photo_<unix>.<ext>, creating dir when
// needed, and returns the full path. Two saves within the same second and
// with the same MIME tag target the same file; the last one wins.
func (c *Commands) SavePhoto(ctx context.Context, data []byte, mimeType string) (Saved, error) {
	logger := log.FromContext(ctx, "photo")
	ext := ExtensionFor(mimeType)

	path, err := c.savePhoto(data, ext)
	metrics.RecordSave(err == nil, ext)
	if err != nil {
		logger.Error().Err(err).Str(log.FieldEvent, "save_photo.failed").Msg("save failed")
		return Saved{}, err
	}

	logger.Info().
		Str(log.FieldEvent, "save_photo.ok").
		Str(log.FieldPath, path).
		Int(log.FieldBytes, len(data)).
		Msg("photo saved")
	return Saved{Path: path, MIMEType: mimeType, Size: len(data)}, nil
}

func (c *Commands) savePhoto(data []byte, ext string) (string, error) {
	dir, err := c.SaveDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &camera.Error{Kind: camera.KindPersistence, Op: "save", Path: dir, Err: err}
	}

	path := filepath.Join(dir, FileName(c.now(), ext))
	if err := c.camera.Save(data, path); err != nil {
		return "", err
	}
	return path, nil
}

// Greet is the connectivity check command.
func (c *Commands) Greet(name string) string {
	metrics.RecordGreeting()
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}
