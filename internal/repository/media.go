package repository

import (
	"context"
	"errors"

	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/model"
)

// MediaRepository handles media item data access
type MediaRepository struct {
	db database.Database
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db database.Database) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create stores a new submission
func (r *MediaRepository) Create(ctx context.Context, item *model.MediaItem) error {
	query := `
		CREATE type::thing("media_item", $id) CONTENT {
			user_id: $user_id,
			title: $title,
			url: $url,
			credit_name: $credit_name,
			status: $status,
			created_on: $created_on,
			reviewed_on: NONE,
			reviewed_by: NONE
		}
	`
	vars := map[string]interface{}{
		"id":          item.ID,
		"user_id":     item.UserID,
		"title":       item.Title,
		"url":         item.URL,
		"credit_name": item.CreditName,
		"status":      item.Status,
		"created_on":  dateTime(item.CreatedAt),
	}

	return r.db.Execute(ctx, query, vars)
}

// GetByID retrieves a media item. A missing item is (nil, nil).
func (r *MediaRepository) GetByID(ctx context.Context, id string) (*model.MediaItem, error) {
	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::thing("media_item", $id)`, map[string]interface{}{"id": id})
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
	return parseMediaRow(row), nil
}

// Update writes the moderation fields of an item
func (r *MediaRepository) Update(ctx context.Context, item *model.MediaItem) error {
	query := `
		UPDATE type::thing("media_item", $id) SET
			title = $title,
			url = $url,
			credit_name = $credit_name,
			status = $status,
			reviewed_on = $reviewed_on,
			reviewed_by = $reviewed_by
	`
	vars := map[string]interface{}{
		"id":          item.ID,
		"title":       item.Title,
		"url":         item.URL,
		"credit_name": item.CreditName,
		"status":      item.Status,
		"reviewed_on": dateTimePtr(item.ReviewedAt),
		"reviewed_by": ptrToNone(item.ReviewedBy),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}
	if len(rowsOf(result)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// ListByStatus returns items in one moderation state, newest first
func (r *MediaRepository) ListByStatus(ctx context.Context, status model.MediaStatus) ([]*model.MediaItem, error) {
	query := `SELECT * FROM media_item WHERE status = $status ORDER BY created_on DESC`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"status": status})
	if err != nil {
		return nil, err
	}

	rows := rowsOf(result)
	items := make([]*model.MediaItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, parseMediaRow(row))
	}
	return items, nil
}

func parseMediaRow(m map[string]interface{}) *model.MediaItem {
	return &model.MediaItem{
		ID:         recordKey(m["id"]),
		UserID:     getString(m, "user_id"),
		Title:      getString(m, "title"),
		URL:        getString(m, "url"),
		CreditName: getString(m, "credit_name"),
		Status:     model.MediaStatus(getString(m, "status")),
		CreatedAt:  parseTime(m["created_on"]),
		ReviewedAt: getTime(m, "reviewed_on"),
		ReviewedBy: getStringPtr(m, "reviewed_by"),
	}
}

// CommentRepository handles media comment data access
type CommentRepository struct {
	db database.Database
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db database.Database) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create stores a comment. Comments are never updated.
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		CREATE type::thing("comment", $id) CONTENT {
			media_id: $media_id,
			user_id: $user_id,
			message: $message,
			created_on: $created_on
		}
	`
	vars := map[string]interface{}{
		"id":         comment.ID,
		"media_id":   comment.MediaID,
		"user_id":    comment.UserID,
		"message":    comment.Message,
		"created_on": dateTime(comment.CreatedAt),
	}

	return r.db.Execute(ctx, query, vars)
}

// ListByMedia returns the comments on one item, oldest first
func (r *CommentRepository) ListByMedia(ctx context.Context, mediaID string) ([]*model.Comment, error) {
	query := `SELECT * FROM comment WHERE media_id = $media_id ORDER BY created_on ASC`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"media_id": mediaID})
	if err != nil {
		return nil, err
	}

	rows := rowsOf(result)
	comments := make([]*model.Comment, 0, len(rows))
	for _, m := range rows {
		comments = append(comments, &model.Comment{
			ID:        recordKey(m["id"]),
			MediaID:   getString(m, "media_id"),
			UserID:    getString(m, "user_id"),
			Message:   getString(m, "message"),
			CreatedAt: parseTime(m["created_on"]),
		})
	}
	return comments, nil
}
