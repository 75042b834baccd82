package model

import "time"

// Event represents a scheduled community event or stream
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartsAt    time.Time  `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StreamURL   *string    `json:"streamUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CreateEventRequest represents a request to schedule an event
type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartsAt    *time.Time `json:"startsAt,omitempty"`
	EndsAt      *time.Time `json:"endsAt,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StreamURL   *string    `json:"streamUrl,omitempty"`
}

// RSVPStatus is the caller's attendance state for one event
type RSVPStatus struct {
	RSVP  bool `json:"rsvp"`
	Count int  `json:"count"`
}
