package repository

import (
	"context"
	"errors"

	"github.com/forgo/community/api/internal/database"
)

// RSVPRepository handles event attendance data access.
// One record per (event, user) pair, enforced by a unique index.
type RSVPRepository struct {
	db database.Database
}

// NewRSVPRepository creates a new RSVP repository
func NewRSVPRepository(db database.Database) *RSVPRepository {
	return &RSVPRepository{db: db}
}

// Toggle flips the caller's RSVP and reports the new state
func (r *RSVPRepository) Toggle(ctx context.Context, eventID, userID string) (bool, error) {
	vars := map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
	}

	result, err := r.db.Query(ctx, `
		DELETE rsvp WHERE event_id = $event_id AND user_id = $user_id RETURN BEFORE
	`, vars)
	if err != nil {
		return false, err
	}
	if len(rowsOf(result)) > 0 {
		return false, nil
	}

	err = r.db.Execute(ctx, `
		CREATE rsvp CONTENT {
			event_id: $event_id,
			user_id: $user_id,
			created_on: time::now()
		}
	`, vars)
	if err != nil {
		// A concurrent toggle already created the record
		if errors.Is(err, database.ErrDuplicate) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// Has reports whether userID has an RSVP for eventID
func (r *RSVPRepository) Has(ctx context.Context, eventID, userID string) (bool, error) {
	query := `SELECT count() AS count FROM rsvp WHERE event_id = $event_id AND user_id = $user_id GROUP ALL`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
	})
	if err != nil {
		return false, err
	}
	return countOf(result) > 0, nil
}

// Count returns the number of RSVPs for eventID
func (r *RSVPRepository) Count(ctx context.Context, eventID string) (int, error) {
	query := `SELECT count() AS count FROM rsvp WHERE event_id = $event_id GROUP ALL`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"event_id": eventID})
	if err != nil {
		return 0, err
	}
	return countOf(result), nil
}

func countOf(result []interface{}) int {
	if len(result) == 0 {
		return 0
	}
	return extractCount(result[0])
}
