package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/latsoguy/latso-mvp-demo/internal/events"
)

// EventsStreamHandler streams bus events to dashboard clients over
// Server-Sent Events (SSE).
type EventsStreamHandler struct {
	bus *events.Bus
	log zerolog.Logger
}

// NewEventsStreamHandler creates a new events stream handler
func NewEventsStreamHandler(bus *events.Bus, log zerolog.Logger) *EventsStreamHandler {
	return &EventsStreamHandler{
		bus: bus,
		log: log.With().Str("component", "events_stream").Logger(),
	}
}

// ServeHTTP handles GET /api/events/stream requests (SSE).
// An optional ?types=a,b query parameter limits which event types are sent.
func (h *EventsStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	typesFilter := r.URL.Query().Get("types")
	var allowedTypes map[events.EventType]bool
	if typesFilter != "" {
		allowedTypes = make(map[events.EventType]bool)
		for _, t := range strings.Split(typesFilter, ",") {
			allowedTypes[events.EventType(strings.TrimSpace(t))] = true
		}
	}

	h.log.Info().
		Str("types_filter", typesFilter).
		Msg("Client connected to event stream")

	eventChan, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()

	done := r.Context().Done()

	fmt.Fprintf(w, "data: %s\n\n", h.encodeEvent(map[string]interface{}{
		"type":    "connected",
		"message": "Connected to event stream",
	}))
	flusher.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-done:
			h.log.Info().Msg("Client disconnected from event stream")
			return

		case event := <-eventChan:
			if allowedTypes != nil && !allowedTypes[event.Type] {
				continue
			}

			eventJSON := h.encodeEvent(map[string]interface{}{
				"type":      string(event.Type),
				"timestamp": event.Timestamp.Format(time.RFC3339),
				"data":      event.Data,
			})

			fmt.Fprintf(w, "data: %s\n\n", eventJSON)
			flusher.Flush()

		case <-heartbeat.C:
			fmt.Fprintf(w, "data: %s\n\n", h.encodeEvent(map[string]interface{}{
				"type":      "heartbeat",
				"timestamp": time.Now().Format(time.RFC3339),
			}))
			flusher.Flush()
		}
	}
}

// encodeEvent encodes an event map to a JSON string
func (h *EventsStreamHandler) encodeEvent(event map[string]interface{}) string {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to marshal event")
		return `{"error":"failed to encode event"}`
	}
	return string(data)
}
