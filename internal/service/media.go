package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/forgo/community/api/internal/model"
)

// MediaRepository defines the interface for media storage
type MediaRepository interface {
	Create(ctx context.Context, item *model.MediaItem) error
	GetByID(ctx context.Context, id string) (*model.MediaItem, error)
	Update(ctx context.Context, item *model.MediaItem) error
	ListByStatus(ctx context.Context, status model.MediaStatus) ([]*model.MediaItem, error)
}

// CommentRepository defines the interface for comment storage
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByMedia(ctx context.Context, mediaID string) ([]*model.Comment, error)
}

// MediaService handles media submissions, review and comments
type MediaService struct {
	mediaRepo   MediaRepository
	commentRepo CommentRepository
	userRepo    UserRepository
	hub         *EventHub
	now         func() time.Time
}

// MediaServiceConfig holds configuration for the media service
type MediaServiceConfig struct {
	MediaRepo   MediaRepository
	CommentRepo CommentRepository
	UserRepo    UserRepository
	Hub         *EventHub
	Now         func() time.Time
}

// NewMediaService creates a new media service
func NewMediaService(cfg MediaServiceConfig) *MediaService {
	return &MediaService{
		mediaRepo:   cfg.MediaRepo,
		commentRepo: cfg.CommentRepo,
		userRepo:    cfg.UserRepo,
		hub:         cfg.Hub,
		now:         defaultClock(cfg.Now),
	}
}

// ListApproved returns the public feed
func (s *MediaService) ListApproved(ctx context.Context) ([]*model.MediaItem, error) {
	return s.mediaRepo.ListByStatus(ctx, model.MediaStatusApproved)
}

// ListPending returns the review queue
func (s *MediaService) ListPending(ctx context.Context) ([]*model.MediaItem, error) {
	return s.mediaRepo.ListByStatus(ctx, model.MediaStatusPending)
}

// Submit records a new media item awaiting review
func (s *MediaService) Submit(ctx context.Context, userID string, req model.CreateMediaRequest) (*model.MediaItem, error) {
	title := strings.TrimSpace(req.Title)
	link := strings.TrimSpace(req.URL)
	if title == "" || link == "" {
		return nil, ErrMissingFields
	}
	if len(title) > model.MaxTitleLength {
		return nil, ErrFieldTooLong
	}
	if !isHTTPURL(link) {
		return nil, ErrInvalidURL
	}

	credit := model.DefaultCredit
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user != nil && user.Name != "" {
		credit = user.Name
	}

	item := &model.MediaItem{
		ID:         newID("m"),
		UserID:     userID,
		Title:      title,
		URL:        link,
		CreditName: credit,
		Status:     model.MediaStatusPending,
		CreatedAt:  s.now(),
	}
	if err := s.mediaRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.hub.emit(HubMediaSubmitted, userID, item, item.CreatedAt)
	return item, nil
}

// Approve publishes a pending item
func (s *MediaService) Approve(ctx context.Context, actorID, mediaID string) (*model.MediaItem, error) {
	return s.review(ctx, actorID, mediaID, model.MediaStatusApproved, HubMediaApproved)
}

// Reject removes a pending item from the queue without publishing it
func (s *MediaService) Reject(ctx context.Context, actorID, mediaID string) (*model.MediaItem, error) {
	return s.review(ctx, actorID, mediaID, model.MediaStatusRejected, HubMediaRejected)
}

func (s *MediaService) review(ctx context.Context, actorID, mediaID string, status model.MediaStatus, eventType HubEventType) (*model.MediaItem, error) {
	item, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMediaNotFound
	}
	if item.Status != model.MediaStatusPending {
		return nil, ErrMediaNotPending
	}

	now := s.now()
	item.Status = status
	item.ReviewedAt = &now
	item.ReviewedBy = stringPtr(actorID)
	if err := s.mediaRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.hub.emit(eventType, actorID, item, now)
	return item, nil
}

// ListComments returns the comments on a media item in posting order
func (s *MediaService) ListComments(ctx context.Context, mediaID string) ([]*model.Comment, error) {
	return s.commentRepo.ListByMedia(ctx, mediaID)
}

// AddComment appends a comment to an existing media item
func (s *MediaService) AddComment(ctx context.Context, userID, mediaID string, req model.CreateCommentRequest) (*model.Comment, error) {
	item, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMediaNotFound
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrMessageRequired
	}
	if len(message) > model.MaxCommentLength {
		return nil, ErrFieldTooLong
	}

	comment := &model.Comment{
		ID:        newID("c"),
		MediaID:   item.ID,
		UserID:    userID,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
