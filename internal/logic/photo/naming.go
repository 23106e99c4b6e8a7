package photo

import (
	"fmt"
	"time"

	"github.com/cjeanneret/CamGo/internal/hw/camera"
)

const (
	// PicturesDir is the per-user picture folder under the home directory.
	PicturesDir = "Pictures"
	// DefaultSubdir is created under PicturesDir when no storage dir is configured.
	DefaultSubdir = "camgo"
	// FallbackExt is used for any MIME tag missing from the table.
	FallbackExt = "bin"
)

var extensions = map[string]string{
	camera.MIMEJPEG: "jpg",
	camera.MIMEPNG:  "png",
}

// ExtensionFor maps a MIME tag to a file extension. Unknown or empty tags
// fall back to "bin".
func ExtensionFor(mimeType string) string {
	if ext, ok := extensions[mimeType]; ok {
		return ext
	}
	return FallbackExt
}

// FileName returns photo_<unix-seconds>.<ext>.
func FileName(ts time.Time, ext string) string {
	return fmt.Sprintf("photo_%d.%s", ts.Unix(), ext)
}
