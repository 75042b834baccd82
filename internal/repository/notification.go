package repository

import (
	"context"

	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/model"
)

// NotificationRepository handles in-app notice data access
type NotificationRepository struct {
	db database.Database
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create stores a notification
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		CREATE type::thing("notification", $id) CONTENT {
			user_id: $user_id,
			type: $type,
			title: $title,
			message: $message,
			created_on: $created_on
		}
	`
	vars := map[string]interface{}{
		"id":         n.ID,
		"user_id":    n.UserID,
		"type":       n.Type,
		"title":      n.Title,
		"message":    n.Message,
		"created_on": dateTime(n.CreatedAt),
	}

	return r.db.Execute(ctx, query, vars)
}

// ListByUser returns the notices for one account, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	query := `SELECT * FROM notification WHERE user_id = $user_id ORDER BY created_on DESC`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, err
	}

	rows := rowsOf(result)
	out := make([]*model.Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, &model.Notification{
			ID:        recordKey(m["id"]),
			UserID:    getString(m, "user_id"),
			Type:      model.NotificationType(getString(m, "type")),
			Title:     getString(m, "title"),
			Message:   getString(m, "message"),
			CreatedAt: parseTime(m["created_on"]),
		})
	}
	return out, nil
}
