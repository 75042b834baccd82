package model

import "time"

// NotificationType represents the kind of notification
type NotificationType string

const (
	NotificationTypeAnnouncement NotificationType = "announcement"
	NotificationTypeEvent        NotificationType = "event"
	NotificationTypeSystem       NotificationType = "system"
)

// Notification represents an in-app notice for one account
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"-"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Welcome notice seeded on the first listing for an account
const (
	WelcomeTitle   = "Welcome!"
	WelcomeMessage = "Thanks for joining the community."
)
