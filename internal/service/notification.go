package service

import (
	"context"
	"time"

	"github.com/forgo/community/api/internal/model"
)

// NotificationRepository defines the interface for notification storage
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	// ListByUser returns notices newest first
	ListByUser(ctx context.Context, userID string) ([]*model.Notification, error)
}

// NotificationService handles per-account notices
type NotificationService struct {
	repo NotificationRepository
	now  func() time.Time
}

// NotificationServiceConfig holds configuration for the notification service
type NotificationServiceConfig struct {
	Repo NotificationRepository
	Now  func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg NotificationServiceConfig) *NotificationService {
	return &NotificationService{
		repo: cfg.Repo,
		now:  defaultClock(cfg.Now),
	}
}

// List returns the account's notices, seeding the welcome notice on first use
func (s *NotificationService) List(ctx context.Context, userID string) ([]*model.Notification, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		return list, nil
	}

	welcome, err := s.Notify(ctx, userID, model.NotificationTypeAnnouncement, model.WelcomeTitle, model.WelcomeMessage)
	if err != nil {
		return nil, err
	}
	return []*model.Notification{welcome}, nil
}

// Notify stores a notice for one account
func (s *NotificationService) Notify(ctx context.Context, userID string, kind model.NotificationType, title, message string) (*model.Notification, error) {
	n := &model.Notification{
		ID:        newID("n"),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}
