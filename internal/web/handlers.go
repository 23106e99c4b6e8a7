package web

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/cjeanneret/CamGo/internal/hw/camera"
	"github.com/cjeanneret/CamGo/internal/log"
	"github.com/cjeanneret/CamGo/internal/logic/photo"
)

// DefaultMaxBodyBytes caps invoke request bodies when no limit is configured.
const DefaultMaxBodyBytes = 32 << 20

const heartbeatInterval = 30 * time.Second

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	commands    *photo.Commands
	broadcaster *StatusBroadcaster
	staticFS    fs.FS
	maxBody     int64
}

// NewHandlers creates handlers with the given dependencies. maxBody <= 0
// selects DefaultMaxBodyBytes.
func NewHandlers(commands *photo.Commands, broadcaster *StatusBroadcaster, staticFS fs.FS, maxBody int64) *Handlers {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &Handlers{
		commands:    commands,
		broadcaster: broadcaster,
		staticFS:    staticFS,
		maxBody:     maxBody,
	}
}

type photoPayload struct {
	Bytes    Payload `json:"bytes"`
	MIMEType string  `json:"mime_type"`
}

type savePhotoRequest struct {
	Bytes      Payload `json:"bytes"`
	MIMEType   string  `json:"mime_type"`
	MIMETypeJS string  `json:"mimeType"`
}

func (r savePhotoRequest) mime() string {
	if r.MIMEType != "" {
		return r.MIMEType
	}
	return r.MIMETypeJS
}

type greetRequest struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// HandleTakePhoto handles POST /invoke/take_photo.
func (h *Handlers) HandleTakePhoto(w http.ResponseWriter, r *http.Request) {
	img, err := h.commands.TakePhoto(r.Context())
	if err != nil {
		writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, photoPayload{Bytes: img.Bytes, MIMEType: img.MIMEType})
}

// HandleSavePhoto handles POST /invoke/save_photo.
func (h *Handlers) HandleSavePhoto(w http.ResponseWriter, r *http.Request) {
	var req savePhotoRequest
	if !h.decode(w, r, &req) {
		return
	}
	saved, err := h.commands.SavePhoto(r.Context(), req.Bytes, req.mime())
	if err != nil {
		writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// HandleGreet handles POST /invoke/greet.
func (h *Handlers) HandleGreet(w http.ResponseWriter, r *http.Request) {
	var req greetRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": h.commands.Greet(req.Name)})
}

// HandleHealth reports liveness and the active camera backend.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"camera": h.commands.Backend(),
	})
}

// ServeIndex serves the main HTML page (root path only).
func (h *Handlers) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.staticFS, "index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

// HandleStatusStream handles GET /status/stream for SSE.
func (h *Handlers) HandleStatusStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // nginx

	ch, unsub := h.broadcaster.Subscribe()
	defer unsub()

	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write([]byte("data: " + msg + "\n\n"))
			flusher.Flush()

		case <-ticker.C:
			_, _ = w.Write([]byte(": heartbeat\n\n"))
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// decode reads a size-capped JSON body into v. On failure it writes the
// response (413 or 400) and returns false.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return false
		}
		logger := log.FromContext(r.Context(), "web")
		logger.Debug().Err(err).Msg("invalid request body")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

// writeCommandError flattens a command error to {"error","kind"}.
func writeCommandError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	if kind, ok := camera.KindOf(err); ok {
		resp.Kind = kind.String()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
