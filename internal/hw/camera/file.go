package camera

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/cjeanneret/CamGo/internal/log"
)

// DefaultSourcePath is the sample image read by FileService when no
// source is configured. Relative to the working directory.
const DefaultSourcePath = "sample.jpg"

// FileService is a hardware-free Service: Capture reads a fixed file,
// Save writes to the given path. Used for development and tests.
type FileService struct {
	source   string
	mimeType string
}

// NewFileService returns a FileService reading source. An empty mimeType
// means "derive from the source extension".
func NewFileService(source, mimeType string) *FileService {
	if source == "" {
		source = DefaultSourcePath
	}
	if mimeType == "" {
		mimeType = MIMEForPath(source)
	}
	return &FileService{source: source, mimeType: mimeType}
}

// Name implements the optional naming used by Describe.
func (s *FileService) Name() string { return "file" }

// Capture returns the full contents of the source file.
func (s *FileService) Capture() (ImageData, error) {
	data, err := os.ReadFile(s.source)
	if err != nil {
		return ImageData{}, acquisitionError(s.source, err)
	}
	l := log.WithComponent("camera")
	l.Debug().
		Str(log.FieldEvent, "capture.read").
		Str(log.FieldPath, s.source).
		Int(log.FieldBytes, len(data)).
		Msg("sample image read")
	return ImageData{Bytes: data, MIMEType: s.mimeType}, nil
}

// Save writes data to dest. See writeFile.
func (s *FileService) Save(data []byte, dest string) error {
	return writeFile(dest, data)
}

// writeFile replaces dest with data. The temp file lives next to dest, so
// a missing parent directory fails before anything appears at dest.
func writeFile(dest string, data []byte) error {
	if dest == "" {
		return persistenceError(dest, errors.New("empty destination"))
	}
	if err := renameio.WriteFile(dest, data, 0o644, renameio.WithTempDir(filepath.Dir(dest))); err != nil {
		return persistenceError(dest, err)
	}
	l := log.WithComponent("camera")
	l.Debug().
		Str(log.FieldEvent, "save.write").
		Str(log.FieldPath, dest).
		Int(log.FieldBytes, len(data)).
		Msg("image written")
	return nil
}
