package service

import (
	"encoding/json"
	"sync"
	"time"
)

// HubEventType represents the type of moderation activity
type HubEventType string

const (
	// Inbox events
	HubReportFiled  HubEventType = "report.filed"
	HubContactFiled HubEventType = "contact.filed"

	// Media events
	HubMediaSubmitted HubEventType = "media.submitted"
	HubMediaApproved  HubEventType = "media.approved"
	HubMediaRejected  HubEventType = "media.rejected"

	// Account events
	HubUserBanned     HubEventType = "user.banned"
	HubUserUnbanned   HubEventType = "user.unbanned"
	HubUserTempbanned HubEventType = "user.tempbanned"
	HubUserKicked     HubEventType = "user.kicked"

	// System events
	HubHeartbeat HubEventType = "heartbeat"
)

// HubEvent represents one moderation activity notice
type HubEvent struct {
	Type    HubEventType `json:"type"`
	Data    interface{}  `json:"data"`
	ActorID string       `json:"actorId,omitempty"`
	At      time.Time    `json:"at"`
}

// Format returns the SSE formatted string
func (e *HubEvent) Format() string {
	data, _ := json.Marshal(e.Data)
	return "event: " + string(e.Type) + "\ndata: " + string(data) + "\n\n"
}

// Subscriber represents a connected listener
type Subscriber struct {
	ID     string
	Events chan *HubEvent
	Done   chan struct{}
}

// EventHub fans moderation activity out to subscribers
type EventHub struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
	heartbeat   *time.Ticker
	done        chan struct{}
	closeOnce   sync.Once
}

// NewEventHub creates a new event hub. A zero heartbeat disables keepalives.
func NewEventHub(heartbeat time.Duration) *EventHub {
	hub := &EventHub{
		subscribers: make(map[string]*Subscriber),
		done:        make(chan struct{}),
	}
	if heartbeat > 0 {
		hub.heartbeat = time.NewTicker(heartbeat)
		go hub.sendHeartbeats()
	}
	return hub
}

// Subscribe adds a new subscriber
func (h *EventHub) Subscribe(subscriberID string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.subscribers[subscriberID]; ok {
		close(old.Done)
		close(old.Events)
	}

	sub := &Subscriber{
		ID:     subscriberID,
		Events: make(chan *HubEvent, 100), // Buffer to prevent blocking
		Done:   make(chan struct{}),
	}
	h.subscribers[subscriberID] = sub
	return sub
}

// Unsubscribe removes a subscriber
func (h *EventHub) Unsubscribe(subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subscribers[subscriberID]; ok {
		close(sub.Done)
		close(sub.Events)
		delete(h.subscribers, subscriberID)
	}
}

// Publish sends an event to every subscriber without blocking
func (h *EventHub) Publish(event *HubEvent) {
	if h == nil || event == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers {
		select {
		case sub.Events <- event:
			// Event sent successfully
		default:
			// Buffer full, skip this subscriber
		}
	}
}

// sendHeartbeats sends periodic heartbeats to all subscribers
func (h *EventHub) sendHeartbeats() {
	for {
		select {
		case <-h.heartbeat.C:
			h.Publish(&HubEvent{
				Type: HubHeartbeat,
				Data: map[string]string{
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				},
			})
		case <-h.done:
			return
		}
	}
}

// Close stops the event hub and disconnects every subscriber
func (h *EventHub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		if h.heartbeat != nil {
			h.heartbeat.Stop()
		}

		h.mu.Lock()
		defer h.mu.Unlock()

		for id, sub := range h.subscribers {
			close(sub.Done)
			close(sub.Events)
			delete(h.subscribers, id)
		}
	})
}

// SubscriberCount returns the number of connected subscribers
func (h *EventHub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// NewHubEvent creates a moderation event
func NewHubEvent(eventType HubEventType, actorID string, data interface{}) *HubEvent {
	return &HubEvent{
		Type:    eventType,
		ActorID: actorID,
		Data:    data,
	}
}

// emit publishes a moderation event stamped at the caller's clock.
// Safe on a nil hub.
func (h *EventHub) emit(eventType HubEventType, actorID string, data interface{}, at time.Time) {
	if h == nil {
		return
	}
	event := NewHubEvent(eventType, actorID, data)
	event.At = at
	h.Publish(event)
}
