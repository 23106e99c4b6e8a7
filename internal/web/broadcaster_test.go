package web

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjeanneret/CamGo/internal/log"
)

func receiveEvent(t *testing.T, ch <-chan string) StatusEvent {
	t.Helper()
	select {
	case msg := <-ch:
		var evt StatusEvent
		require.NoError(t, json.Unmarshal([]byte(msg), &evt))
		return evt
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for status event")
	}
	return StatusEvent{}
}

func TestBroadcaster_FansOutToEverySubscriber(t *testing.T) {
	b := NewStatusBroadcaster()
	ch1, unsub1 := b.Subscribe()
	defer unsub1()
	ch2, unsub2 := b.Subscribe()
	defer unsub2()

	b.Broadcast("error", "capture failed: no device")

	for _, ch := range []<-chan string{ch1, ch2} {
		evt := receiveEvent(t, ch)
		assert.Equal(t, "error", evt.Level)
		assert.Equal(t, "capture failed: no device", evt.Msg)
		_, err := time.Parse(time.RFC3339, evt.Time)
		assert.NoError(t, err, "event time must be RFC3339")
	}
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	b := NewStatusBroadcaster()
	ch, unsub := b.Subscribe()
	unsub()

	_, ok := <-ch
	assert.False(t, ok, "channel is closed after unsubscribe")

	// later events go nowhere
	b.BroadcastMsg("photo saved /tmp/photo_1.jpg")
}

func TestBroadcaster_SlowSubscriberMissesEvents(t *testing.T) {
	b := NewStatusBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	for i := 0; i < subscriberBuffer+5; i++ {
		b.BroadcastMsg("photo captured")
	}

	assert.Len(t, ch, subscriberBuffer)
}

func TestBroadcastWriter_MirrorsPhotoEvents(t *testing.T) {
	b := NewStatusBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	logger := zerolog.New(BroadcastWriter(b))
	logger.Debug().Str(log.FieldEvent, "take_photo.ok").Int(log.FieldBytes, 3).Msg("photo captured")
	logger.Info().Str(log.FieldPath, "/tmp/photo_1.jpg").Msg("photo saved")
	logger.Error().Err(errors.New("no device")).Msg("capture failed")

	want := []StatusEvent{
		{Level: "debug", Msg: "photo captured"},
		{Level: "info", Msg: "photo saved /tmp/photo_1.jpg"},
		{Level: "error", Msg: "capture failed: no device"},
	}
	for _, w := range want {
		evt := receiveEvent(t, ch)
		assert.Equal(t, w.Level, evt.Level)
		assert.Equal(t, w.Msg, evt.Msg)
	}
}

func TestBroadcastWriter_SplitsLinesAndFallsBackToText(t *testing.T) {
	b := NewStatusBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	p := []byte("{\"level\":\"info\",\"message\":\"photo saved\"}\n  camera backend ready  \n   \n")
	n, err := BroadcastWriter(b).Write(p)
	require.NoError(t, err)
	assert.Equal(t, len(p), n)

	assert.Equal(t, "photo saved", receiveEvent(t, ch).Msg)
	text := receiveEvent(t, ch)
	assert.Equal(t, "info", text.Level)
	assert.Equal(t, "camera backend ready", text.Msg)
	assert.Empty(t, ch, "whitespace-only lines are dropped")
}
