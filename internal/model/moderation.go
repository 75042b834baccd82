package model

import (
	"math"
	"time"
)

// ReportType represents the kind of report
type ReportType string

const (
	ReportTypeBug           ReportType = "bug"
	ReportTypeRuleViolation ReportType = "rule-violation"
)

// IsValid reports whether t is a known report type
func (t ReportType) IsValid() bool {
	return t == ReportTypeBug || t == ReportTypeRuleViolation
}

// ReportStatus represents the state of a report
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusAccepted  ReportStatus = "accepted"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// IsValid reports whether s is a known report status
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending, ReportStatusAccepted, ReportStatusDismissed:
		return true
	}
	return false
}

// Report represents a bug or rule-violation report filed by an account
type Report struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	Type         ReportType   `json:"type"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Evidence     *string      `json:"evidence,omitempty"`
	Status       ReportStatus `json:"status"`
	AdminMessage *string      `json:"adminMessage,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    *time.Time   `json:"updatedAt,omitempty"`
}

// ContactCategory represents the topic of a contact message
type ContactCategory string

const (
	ContactCategoryGeneral     ContactCategory = "general"
	ContactCategoryTechnical   ContactCategory = "technical"
	ContactCategoryAccount     ContactCategory = "account"
	ContactCategoryFeedback    ContactCategory = "feedback"
	ContactCategoryPartnership ContactCategory = "partnership"
	ContactCategoryOther       ContactCategory = "other"
)

// IsValid reports whether c is a known contact category
func (c ContactCategory) IsValid() bool {
	switch c {
	case ContactCategoryGeneral, ContactCategoryTechnical, ContactCategoryAccount,
		ContactCategoryFeedback, ContactCategoryPartnership, ContactCategoryOther:
		return true
	}
	return false
}

// ContactStatus represents the state of a contact message
type ContactStatus string

const (
	ContactStatusPending    ContactStatus = "pending"
	ContactStatusInProgress ContactStatus = "in-progress"
	ContactStatusResolved   ContactStatus = "resolved"
)

// IsValid reports whether s is a known contact status
func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusPending, ContactStatusInProgress, ContactStatusResolved:
		return true
	}
	return false
}

// ContactMessage represents a support inbox entry
type ContactMessage struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Subject     string          `json:"subject"`
	Category    ContactCategory `json:"category"`
	Message     string          `json:"message"`
	Status      ContactStatus   `json:"status"`
	Response    *string         `json:"response,omitempty"`
	RespondedAt *time.Time      `json:"respondedAt,omitempty"`
	ReportID    *string         `json:"reportId,omitempty"` // Set when filed alongside a report
	CreatedAt   time.Time       `json:"createdAt"`
}

// UserAction represents an administrator sanction
type UserAction string

const (
	UserActionBan     UserAction = "ban"
	UserActionUnban   UserAction = "unban"
	UserActionKick    UserAction = "kick"
	UserActionTempban UserAction = "tempban"
)

// IsValid reports whether a is a known action
func (a UserAction) IsValid() bool {
	switch a {
	case UserActionBan, UserActionUnban, UserActionKick, UserActionTempban:
		return true
	}
	return false
}

// KickRecord is the tombstone left behind when an account is kicked
type KickRecord struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"` // Former account id
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Reason   string    `json:"reason,omitempty"`
	KickedBy string    `json:"kickedBy"`
	KickedAt time.Time `json:"kickedAt"`
}

// Constraints
const (
	DefaultBanReason      = "Banned by admin"
	MaxTempbanHours       = 24 * 365
	MaxTitleLength        = 200
	MaxDescriptionLength  = 5000
	MaxAdminMessageLength = 2000
	ReportContactPrefix   = "Report: "
)

// CreateReportRequest represents a request to file a report
type CreateReportRequest struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Evidence    *string `json:"evidence,omitempty"`
}

// UpdateReportRequest represents an administrator update to a report
type UpdateReportRequest struct {
	ID           string  `json:"id"`
	Status       *string `json:"status,omitempty"`
	AdminMessage *string `json:"adminMessage,omitempty"`
}

// CreateContactRequest represents a support form submission
type CreateContactRequest struct {
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// UpdateContactRequest represents an administrator update to a contact message
type UpdateContactRequest struct {
	ID       string  `json:"id"`
	Status   *string `json:"status,omitempty"`
	Response *string `json:"response,omitempty"`
}

// UserActionRequest represents an administrator sanction request
type UserActionRequest struct {
	UserID   string   `json:"userId"`
	Action   string   `json:"action"`
	Duration *float64 `json:"duration,omitempty"` // Hours, tempban only
	Reason   *string  `json:"reason,omitempty"`
}

// DurationHours returns the requested tempban length when it is a positive
// whole number of hours
func (r *UserActionRequest) DurationHours() (int, bool) {
	if r.Duration == nil {
		return 0, false
	}
	d := *r.Duration
	if d <= 0 || d != math.Trunc(d) || d > MaxTempbanHours {
		return 0, false
	}
	return int(d), true
}

// UserActionResult describes the outcome of a sanction
type UserActionResult struct {
	Action UserAction  `json:"action"`
	User   *User       `json:"user,omitempty"` // Nil after a kick
	Kick   *KickRecord `json:"kick,omitempty"`
}
