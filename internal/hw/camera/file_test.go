package camera

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSample(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestFileService_CaptureReturnsSourceBytes(t *testing.T) {
	want := []byte{0xFF, 0xD8, 0xFF, 0xE0, 'J', 'F', 'I', 'F'}
	svc := NewFileService(writeSample(t, "sample.jpg", want), "")

	img, err := svc.Capture()
	require.NoError(t, err)
	assert.Equal(t, want, img.Bytes)
	assert.Equal(t, MIMEJPEG, img.MIMEType)
}

func TestFileService_CaptureIsDeterministic(t *testing.T) {
	svc := NewFileService(writeSample(t, "sample.png", []byte("png-bytes")), "")

	first, err := svc.Capture()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		next, err := svc.Capture()
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
	assert.Equal(t, MIMEPNG, first.MIMEType)
}

func TestFileService_ConfiguredMIMEWins(t *testing.T) {
	svc := NewFileService(writeSample(t, "frame.raw", []byte("x")), MIMEPNG)
	img, err := svc.Capture()
	require.NoError(t, err)
	assert.Equal(t, MIMEPNG, img.MIMEType)
}

func TestFileService_DefaultSource(t *testing.T) {
	svc := NewFileService("", "")
	assert.Equal(t, DefaultSourcePath, svc.source)
	assert.Equal(t, MIMEJPEG, svc.mimeType)
}

func TestFileService_CaptureMissingSource(t *testing.T) {
	svc := NewFileService(filepath.Join(t.TempDir(), "absent.jpg"), "")

	img, err := svc.Capture()
	require.Error(t, err)
	assert.NotEmpty(t, err.Error())
	assert.Nil(t, img.Bytes)
	assert.True(t, errors.Is(err, ErrAcquisition))
	assert.False(t, errors.Is(err, ErrPersistence))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileService_SaveRoundTrip(t *testing.T) {
	svc := NewFileService("", "")
	dir := t.TempDir()

	cases := map[string][]byte{
		"empty":  {},
		"small":  []byte("hello"),
		"binary": {0x00, 0xFF, 0x10, 0x80},
		"large":  bytes.Repeat([]byte{0xAB}, 1<<20),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			dest := filepath.Join(dir, name+".bin")
			require.NoError(t, svc.Save(data, dest))

			got, err := os.ReadFile(dest)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(data, got), "round trip mismatch")
		})
	}
}

func TestFileService_SaveOverwrites(t *testing.T) {
	svc := NewFileService("", "")
	dest := filepath.Join(t.TempDir(), "photo.jpg")

	require.NoError(t, svc.Save([]byte("first version, longer"), dest))
	require.NoError(t, svc.Save([]byte("second"), dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestFileService_SaveMissingParent(t *testing.T) {
	svc := NewFileService("", "")
	parent := filepath.Join(t.TempDir(), "missing")
	dest := filepath.Join(parent, "photo.jpg")

	err := svc.Save([]byte("data"), dest)
	require.Error(t, err)
	assert.NotEmpty(t, err.Error())
	assert.True(t, errors.Is(err, ErrPersistence))

	_, statErr := os.Stat(dest)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no file may be created")
	_, statErr = os.Stat(parent)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "Save must not create directories")
}

func TestFileService_SaveEmptyDestination(t *testing.T) {
	err := NewFileService("", "").Save([]byte("x"), "")
	assert.True(t, errors.Is(err, ErrPersistence))
}
