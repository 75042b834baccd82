package service

import (
	"context"
	"strings"
	"time"

	"github.com/forgo/community/api/internal/model"
)

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	// List returns events ordered by StartsAt ascending
	List(ctx context.Context) ([]*model.Event, error)
}

// RSVPRepository defines the interface for attendance storage
type RSVPRepository interface {
	// Toggle flips attendance for userID and reports the new state
	Toggle(ctx context.Context, eventID, userID string) (bool, error)
	Has(ctx context.Context, eventID, userID string) (bool, error)
	Count(ctx context.Context, eventID string) (int, error)
}

// EventService handles the event calendar and RSVPs
type EventService struct {
	eventRepo EventRepository
	rsvpRepo  RSVPRepository
	now       func() time.Time
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	EventRepo EventRepository
	RSVPRepo  RSVPRepository
	Now       func() time.Time
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	return &EventService{
		eventRepo: cfg.EventRepo,
		rsvpRepo:  cfg.RSVPRepo,
		now:       defaultClock(cfg.Now),
	}
}

// List returns all events ordered by start time
func (s *EventService) List(ctx context.Context) ([]*model.Event, error) {
	return s.eventRepo.List(ctx)
}

// Create schedules a new event
func (s *EventService) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.StartsAt == nil || req.StartsAt.IsZero() {
		return nil, ErrMissingFields
	}
	if len(title) > model.MaxTitleLength {
		return nil, ErrFieldTooLong
	}
	if req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, ErrInvalidEventTime
	}
	if req.Description != nil && len(*req.Description) > model.MaxDescriptionLength {
		return nil, ErrFieldTooLong
	}
	if req.StreamURL != nil && *req.StreamURL != "" && !isHTTPURL(*req.StreamURL) {
		return nil, ErrInvalidURL
	}

	event := &model.Event{
		ID:          newID("e"),
		Title:       title,
		Description: req.Description,
		StartsAt:    req.StartsAt.UTC(),
		EndsAt:      req.EndsAt,
		Location:    req.Location,
		StreamURL:   req.StreamURL,
		CreatedAt:   s.now(),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetRSVP returns the caller's attendance for an event.
// Unknown events report no attendance.
func (s *EventService) GetRSVP(ctx context.Context, eventID, userID string) (*model.RSVPStatus, error) {
	attending, err := s.rsvpRepo.Has(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.rsvpRepo.Count(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &model.RSVPStatus{RSVP: attending, Count: count}, nil
}

// ToggleRSVP flips the caller's attendance
func (s *EventService) ToggleRSVP(ctx context.Context, eventID, userID string) (*model.RSVPStatus, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	attending, err := s.rsvpRepo.Toggle(ctx, event.ID, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.rsvpRepo.Count(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	return &model.RSVPStatus{RSVP: attending, Count: count}, nil
}
