package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// HTMX event names the front end listens for. Mutations fire one of these so
// the list, stats, and charts reload themselves.
const (
	TriggerRoundCreated = "roundCreated"
	TriggerRoundUpdated = "roundUpdated"
	TriggerRoundDeleted = "roundDeleted"
)

// HTMXResponseBuilder accumulates HX-Trigger events and headers for an HTMX
// partial response, then writes them in one shot.
type HTMXResponseBuilder struct {
	w        http.ResponseWriter
	status   int
	triggers map[string]any
	body     []byte
}

func NewHTMXResponse(w http.ResponseWriter) *HTMXResponseBuilder {
	return &HTMXResponseBuilder{
		w:        w,
		status:   http.StatusOK,
		triggers: make(map[string]any),
	}
}

func (b *HTMXResponseBuilder) Status(code int) *HTMXResponseBuilder {
	b.status = code
	return b
}

// Trigger registers a client-side event with an optional payload.
func (b *HTMXResponseBuilder) Trigger(event string, detail any) *HTMXResponseBuilder {
	b.triggers[event] = detail
	return b
}

// Notification queues a toast for the front end. Success toasts linger 3
// seconds, errors 5.
func (b *HTMXResponseBuilder) Notification(kind, message string) *HTMXResponseBuilder {
	duration := 3000
	if kind == "error" {
		duration = 5000
	}
	b.triggers["showNotification"] = map[string]any{
		"type":     kind,
		"message":  message,
		"duration": duration,
	}
	return b
}

func (b *HTMXResponseBuilder) BodyHTML(html string) *HTMXResponseBuilder {
	b.body = []byte(html)
	return b
}

// Write flushes headers, triggers, and body. Call it last.
func (b *HTMXResponseBuilder) Write() {
	if len(b.triggers) > 0 {
		payload, err := json.Marshal(b.triggers)
		if err != nil {
			slog.Error("Failed to marshal HX-Trigger payload", "error", err)
		} else {
			b.w.Header().Set("HX-Trigger", string(payload))
		}
	}
	if b.body != nil {
		b.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	b.w.WriteHeader(b.status)
	if b.body != nil {
		if _, err := b.w.Write(b.body); err != nil {
			slog.Error("Failed to write response body", "error", err)
		}
	}
}

// writeHTMXError reports a failed operation as an error toast without
// swapping any content.
func writeHTMXError(w http.ResponseWriter, status int, format string, args ...any) {
	NewHTMXResponse(w).
		Status(status).
		Notification("error", fmt.Sprintf(format, args...)).
		Write()
}
