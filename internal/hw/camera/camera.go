package camera

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Service is the capability the rest of the application depends on:
// obtain a photo and persist a photo, regardless of how the photo is
// acquired (sample file, GPIO-triggered body, platform camera API, ...).
//
// Exactly one Service is built at startup and never swapped afterwards.
type Service interface {
	// Capture obtains a photo. Failures are *Error of KindAcquisition.
	Capture() (ImageData, error)

	// Save writes data verbatim to dest, replacing any existing file.
	// Missing parent directories are not created. Failures are *Error
	// of KindPersistence.
	Save(data []byte, dest string) error
}

// ImageData is a captured photo: raw bytes plus the MIME tag chosen by
// the backend that produced them.
type ImageData struct {
	Bytes    []byte
	MIMEType string
}

// Trigger fires a physical shutter. It carries no image data; backends
// that own a Trigger fetch the resulting file themselves.
type Trigger interface {
	Shoot() error
}

// Well-known MIME tags.
const (
	MIMEJPEG        = "image/jpeg"
	MIMEPNG         = "image/png"
	MIMEOctetStream = "application/octet-stream"
)

// MIMEForPath derives a MIME tag from a file name extension. Content is
// never inspected.
func MIMEForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return MIMEJPEG
	case ".png":
		return MIMEPNG
	default:
		return MIMEOctetStream
	}
}

// Describe returns a short backend name for logs and health output.
func Describe(s Service) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}
