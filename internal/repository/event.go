package repository

import (
	"context"
	"errors"

	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/model"
)

// EventRepository handles event data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create schedules a new event
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		CREATE type::thing("event", $id) CONTENT {
			title: $title,
			description: $description,
			starts_at: $starts_at,
			ends_at: $ends_at,
			location: $location,
			stream_url: $stream_url,
			created_on: $created_on
		}
	`
	vars := map[string]interface{}{
		"id":          event.ID,
		"title":       event.Title,
		"description": ptrToNone(event.Description),
		"starts_at":   dateTime(event.StartsAt),
		"ends_at":     dateTimePtr(event.EndsAt),
		"location":    ptrToNone(event.Location),
		"stream_url":  ptrToNone(event.StreamURL),
		"created_on":  dateTime(event.CreatedAt),
	}

	return r.db.Execute(ctx, query, vars)
}

// GetByID retrieves an event. A missing event is (nil, nil).
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::thing("event", $id)`, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	row := singleRow(result)
	if row == nil {
		return nil, nil
	}
	return parseEventRow(row), nil
}

// List returns every event by start time
func (r *EventRepository) List(ctx context.Context) ([]*model.Event, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM event ORDER BY starts_at ASC`, nil)
	if err != nil {
		return nil, err
	}

	rows := rowsOf(result)
	events := make([]*model.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, parseEventRow(row))
	}
	return events, nil
}

func parseEventRow(m map[string]interface{}) *model.Event {
	return &model.Event{
		ID:          recordKey(m["id"]),
		Title:       getString(m, "title"),
		Description: getStringPtr(m, "description"),
		StartsAt:    parseTime(m["starts_at"]),
		EndsAt:      getTime(m, "ends_at"),
		Location:    getStringPtr(m, "location"),
		StreamURL:   getStringPtr(m, "stream_url"),
		CreatedAt:   parseTime(m["created_on"]),
	}
}
