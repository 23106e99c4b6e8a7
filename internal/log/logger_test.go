package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLevel(t *testing.T) {
	cases := []struct {
		debug int
		want  zerolog.Level
	}{
		{-1, zerolog.Disabled},
		{LevelOff, zerolog.Disabled},
		{LevelInfo, zerolog.InfoLevel},
		{LevelLive, zerolog.DebugLevel},
		{LevelVerbose, zerolog.DebugLevel},
		{LevelTrace, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ZerologLevel(tc.debug), "debug level %d", tc.debug)
	}
}

func TestZerologLevel_LiveAndVerboseShareDebug(t *testing.T) {
	assert.Equal(t, ZerologLevel(LevelLive), ZerologLevel(LevelVerbose))
	assert.NotEqual(t, ZerologLevel(LevelInfo), ZerologLevel(LevelLive))
}

func TestConfigure_WritesComponentAndService(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{DebugLevel: LevelInfo, Output: &buf, Service: "camgo-test"})
	t.Cleanup(func() { Configure(Config{DebugLevel: LevelOff}) })

	l := WithComponent("camera")
	l.Info().Str(FieldEvent, "capture.ok").Msg("captured")
	l.Debug().Msg("hidden at info level")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "camgo-test", entry["service"])
	assert.Equal(t, "camera", entry[FieldComponent])
	assert.Equal(t, "capture.ok", entry[FieldEvent])
}

func TestConfigure_LevelOffIsSilent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{DebugLevel: LevelOff, Output: &buf})

	l := WithComponent("web")
	l.Error().Msg("nothing")

	assert.Zero(t, buf.Len())
}

func TestFromContext_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{DebugLevel: LevelVerbose, Output: &buf})
	t.Cleanup(func() { Configure(Config{DebugLevel: LevelOff}) })

	ctx := ContextWithRequestID(context.Background(), "req-123")
	l := FromContext(ctx, "web")
	l.Debug().Msg("request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "req-123", entry[FieldRequestID])
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Empty(t, RequestIDFromContext(nil))
}
