package web

import (
	"bytes"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cjeanneret/CamGo/internal/log"
)

// StatusEvent is one status line pushed to /status/stream clients.
type StatusEvent struct {
	Time  string `json:"t"`
	Level string `json:"l,omitempty"`
	Msg   string `json:"msg"`
}

const subscriberBuffer = 64

// StatusBroadcaster fans status events out to every connected SSE client.
type StatusBroadcaster struct {
	mu      sync.RWMutex
	clients map[chan string]struct{}
}

// NewStatusBroadcaster creates a new broadcaster.
func NewStatusBroadcaster() *StatusBroadcaster {
	return &StatusBroadcaster{
		clients: make(map[chan string]struct{}),
	}
}

// Subscribe returns a channel that receives broadcast messages and a cleanup function.
// The caller must call the returned cleanup when done (e.g. on client disconnect).
func (b *StatusBroadcaster) Subscribe() (<-chan string, func()) {
	ch := make(chan string, subscriberBuffer)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()

	unsub := func() {
		b.mu.Lock()
		delete(b.clients, ch)
		b.mu.Unlock()
		close(ch)
	}
	return ch, unsub
}

// Broadcast sends {"t":"...","l":level,"msg":msg} to all subscribers.
// A subscriber whose buffer is full misses the event.
func (b *StatusBroadcaster) Broadcast(level, msg string) {
	evt := StatusEvent{
		Time:  time.Now().Format(time.RFC3339),
		Level: level,
		Msg:   msg,
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	payload := string(data)

	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- payload:
		default:
		}
	}
}

// BroadcastMsg is a convenience for level "info".
func (b *StatusBroadcaster) BroadcastMsg(msg string) {
	b.Broadcast("info", msg)
}

// BroadcastWriter returns an io.Writer that mirrors zerolog JSON lines to
// SSE clients as status events. Lines that are not JSON are sent verbatim
// at level "info".
func BroadcastWriter(b *StatusBroadcaster) io.Writer {
	return &broadcastWriter{b: b}
}

type broadcastWriter struct {
	b *StatusBroadcaster
}

func (w *broadcastWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(p, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		level, msg, ok := parseLogLine(line)
		if !ok {
			w.b.BroadcastMsg(string(line))
			continue
		}
		w.b.Broadcast(level, msg)
	}
	return len(p), nil
}

// parseLogLine extracts level and a one-line message from a zerolog event.
// The error and path fields, when present, are appended to the message.
func parseLogLine(line []byte) (level, msg string, ok bool) {
	var entry map[string]any
	if err := json.Unmarshal(line, &entry); err != nil {
		return "", "", false
	}
	msg, _ = entry[zerolog.MessageFieldName].(string)
	if msg == "" {
		return "", "", false
	}
	level, _ = entry[zerolog.LevelFieldName].(string)
	if level == "" {
		level = "info"
	}
	if path, _ := entry[log.FieldPath].(string); path != "" {
		msg += " " + path
	}
	if errMsg, _ := entry[zerolog.ErrorFieldName].(string); errMsg != "" {
		msg += ": " + errMsg
	}
	return level, msg, true
}
