package model

import "time"

// MediaStatus represents the moderation state of a media item
type MediaStatus string

const (
	MediaStatusPending  MediaStatus = "pending"
	MediaStatusApproved MediaStatus = "approved"
	MediaStatusRejected MediaStatus = "rejected"
)

// MediaItem represents a clip or image shared by an account
type MediaItem struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	Title      string      `json:"title"`
	URL        string      `json:"url"`
	CreditName string      `json:"creditName"`
	Status     MediaStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	ReviewedAt *time.Time  `json:"reviewedAt,omitempty"`
	ReviewedBy *string     `json:"reviewedBy,omitempty"`
}

// Comment represents an immutable comment on a media item
type Comment struct {
	ID        string    `json:"id"`
	MediaID   string    `json:"mediaId"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Constraints
const (
	MaxCommentLength = 2000
	DefaultCredit    = "User"
)

// CreateMediaRequest represents a media submission
type CreateMediaRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CreateCommentRequest represents a new comment
type CreateCommentRequest struct {
	Message string `json:"message"`
}
