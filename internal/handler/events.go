package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
	"github.com/google/uuid"
)

// EventsHandler streams moderation activity to administrators over SSE
type EventsHandler struct {
	eventHub *service.EventHub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(eventHub *service.EventHub) *EventsHandler {
	return &EventsHandler{eventHub: eventHub}
}

// Stream handles GET /api/admin/stream
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, model.NewInternalError("streaming not supported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// The stream outlives the server write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	subscriberID := uuid.New().String()
	sub := h.eventHub.Subscribe(subscriberID)
	defer h.eventHub.Unsubscribe(subscriberID)

	fmt.Fprintf(w, "event: connected\ndata: {\"subscriberId\":\"%s\"}\n\n", subscriberID)
	flusher.Flush()

	for {
		select {
		case event, ok := <-sub.Events:
			if !ok {
				return
			}
			fmt.Fprint(w, event.Format())
			flusher.Flush()

		case <-sub.Done:
			return

		case <-r.Context().Done():
			return
		}
	}
}
