package repository

import (
	"context"

	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/model"
)

// KickRepository removes accounts and keeps their tombstones
type KickRepository struct {
	db database.Database
}

// NewKickRepository creates a new kick repository
func NewKickRepository(db database.Database) *KickRepository {
	return &KickRepository{db: db}
}

// Kick deletes the account and writes the tombstone in one transaction
func (r *KickRepository) Kick(ctx context.Context, userID string, record *model.KickRecord) error {
	batch := database.NewAtomicBatch().
		Add(`DELETE type::thing("user", $id)`, map[string]interface{}{"id": userID}).
		Add(`
			CREATE type::thing("kick_record", $id) CONTENT {
				user_id: $user_id,
				email: $email,
				name: $name,
				reason: $reason,
				kicked_by: $kicked_by,
				kicked_on: $kicked_on
			}
		`, map[string]interface{}{
			"id":        record.ID,
			"user_id":   record.UserID,
			"email":     record.Email,
			"name":      record.Name,
			"reason":    record.Reason,
			"kicked_by": record.KickedBy,
			"kicked_on": dateTime(record.KickedAt),
		})

	return batch.Execute(ctx, r.db)
}

// List returns every tombstone, newest first
func (r *KickRepository) List(ctx context.Context) ([]*model.KickRecord, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM kick_record ORDER BY kicked_on DESC`, nil)
	if err != nil {
		return nil, err
	}

	rows := rowsOf(result)
	records := make([]*model.KickRecord, 0, len(rows))
	for _, m := range rows {
		records = append(records, &model.KickRecord{
			ID:       recordKey(m["id"]),
			UserID:   getString(m, "user_id"),
			Email:    getString(m, "email"),
			Name:     getString(m, "name"),
			Reason:   getString(m, "reason"),
			KickedBy: getString(m, "kicked_by"),
			KickedAt: parseTime(m["kicked_on"]),
		})
	}
	return records, nil
}
