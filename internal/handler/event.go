package handler

import (
	"net/http"

	"github.com/forgo/community/api/internal/middleware"
	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

// EventHandler handles the event calendar and RSVPs
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /api/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if events == nil {
		events = []*model.Event{}
	}
	WriteOK(w, Envelope{"events": events})
}

// Create handles POST /api/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.eventService.Create(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{"event": event})
}

// GetRSVP handles GET /api/events/{id}/rsvp
func (h *EventHandler) GetRSVP(w http.ResponseWriter, r *http.Request) {
	status, err := h.eventService.GetRSVP(r.Context(), r.PathValue("id"), middleware.GetUserID(r.Context()))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeRSVP(w, status)
}

// ToggleRSVP handles POST /api/events/{id}/rsvp
func (h *EventHandler) ToggleRSVP(w http.ResponseWriter, r *http.Request) {
	status, err := h.eventService.ToggleRSVP(r.Context(), r.PathValue("id"), middleware.GetUserID(r.Context()))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeRSVP(w, status)
}

func writeRSVP(w http.ResponseWriter, status *model.RSVPStatus) {
	WriteOK(w, Envelope{"rsvp": status.RSVP, "count": status.Count})
}
