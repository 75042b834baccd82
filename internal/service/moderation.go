package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/forgo/community/api/internal/model"
)

// ReportRepository defines the interface for report storage
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	GetByID(ctx context.Context, id string) (*model.Report, error)
	Update(ctx context.Context, report *model.Report) error
	List(ctx context.Context) ([]*model.Report, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Report, error)
}

// ContactRepository defines the interface for contact message storage
type ContactRepository interface {
	Create(ctx context.Context, contact *model.ContactMessage) error
	GetByID(ctx context.Context, id string) (*model.ContactMessage, error)
	Update(ctx context.Context, contact *model.ContactMessage) error
	List(ctx context.Context) ([]*model.ContactMessage, error)
	ListByUser(ctx context.Context, userID string) ([]*model.ContactMessage, error)
}

// ModerationService handles the report and contact inboxes
type ModerationService struct {
	reportRepo  ReportRepository
	contactRepo ContactRepository
	notifier    *NotificationService
	hub         *EventHub
	now         func() time.Time
}

// ModerationServiceConfig holds configuration for the moderation service
type ModerationServiceConfig struct {
	ReportRepo  ReportRepository
	ContactRepo ContactRepository
	// Notifier, when set, tells the author about administrator replies
	Notifier *NotificationService
	Hub      *EventHub
	Now      func() time.Time
}

// NewModerationService creates a new moderation service
func NewModerationService(cfg ModerationServiceConfig) *ModerationService {
	return &ModerationService{
		reportRepo:  cfg.ReportRepo,
		contactRepo: cfg.ContactRepo,
		notifier:    cfg.Notifier,
		hub:         cfg.Hub,
		now:         defaultClock(cfg.Now),
	}
}

// Report operations

// CreateReport files a report and mirrors it into the contact inbox
func (s *ModerationService) CreateReport(ctx context.Context, userID string, req model.CreateReportRequest) (*model.Report, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if req.Type == "" || title == "" || description == "" {
		return nil, ErrMissingFields
	}
	reportType := model.ReportType(req.Type)
	if !reportType.IsValid() {
		return nil, ErrInvalidReportType
	}
	if len(title) > model.MaxTitleLength || len(description) > model.MaxDescriptionLength {
		return nil, ErrFieldTooLong
	}

	now := s.now()
	report := &model.Report{
		ID:          newID("r"),
		UserID:      userID,
		Type:        reportType,
		Title:       title,
		Description: description,
		Evidence:    req.Evidence,
		Status:      model.ReportStatusPending,
		CreatedAt:   now,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	category := model.ContactCategoryOther
	if reportType == model.ReportTypeBug {
		category = model.ContactCategoryTechnical
	}
	contact := &model.ContactMessage{
		ID:        newID("contact"),
		UserID:    userID,
		Subject:   model.ReportContactPrefix + title,
		Category:  category,
		Message:   description,
		Status:    model.ContactStatusPending,
		ReportID:  &report.ID,
		CreatedAt: now,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		// The report stands even when the inbox mirror fails
		slog.Warn("failed to mirror report into contact inbox",
			slog.String("report_id", report.ID),
			slog.String("error", err.Error()),
		)
	}

	s.hub.emit(HubReportFiled, userID, report, now)
	return report, nil
}

// ListReports returns every report
func (s *ModerationService) ListReports(ctx context.Context) ([]*model.Report, error) {
	return s.reportRepo.List(ctx)
}

// ListMyReports returns the reports filed by userID
func (s *ModerationService) ListMyReports(ctx context.Context, userID string) ([]*model.Report, error) {
	return s.reportRepo.ListByUser(ctx, userID)
}

// UpdateReport sets the status and administrator message in one write
func (s *ModerationService) UpdateReport(ctx context.Context, req model.UpdateReportRequest) (*model.Report, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrMissingFields
	}
	var status model.ReportStatus
	if req.Status != nil {
		status = model.ReportStatus(*req.Status)
		if !status.IsValid() {
			return nil, ErrInvalidReportStatus
		}
	}
	if req.AdminMessage != nil && len(*req.AdminMessage) > model.MaxAdminMessageLength {
		return nil, ErrFieldTooLong
	}

	report, err := s.reportRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	if req.Status != nil {
		report.Status = status
	}
	adminMessage := strings.TrimSpace(derefString(req.AdminMessage))
	if adminMessage != "" {
		report.AdminMessage = req.AdminMessage
	}
	now := s.now()
	report.UpdatedAt = &now

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	if adminMessage != "" {
		s.notify(ctx, report.UserID, "Report updated: "+report.Title, *req.AdminMessage)
	}
	return report, nil
}

// Contact operations

// CreateContact files a support message
func (s *ModerationService) CreateContact(ctx context.Context, userID string, req model.CreateContactRequest) (*model.ContactMessage, error) {
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)
	if subject == "" || message == "" || req.Category == "" {
		return nil, ErrMissingFields
	}
	category := model.ContactCategory(req.Category)
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if len(subject) > model.MaxTitleLength || len(message) > model.MaxDescriptionLength {
		return nil, ErrFieldTooLong
	}

	contact := &model.ContactMessage{
		ID:        newID("contact"),
		UserID:    userID,
		Subject:   subject,
		Category:  category,
		Message:   message,
		Status:    model.ContactStatusPending,
		CreatedAt: s.now(),
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	s.hub.emit(HubContactFiled, userID, contact, contact.CreatedAt)
	return contact, nil
}

// ListContacts returns every contact message
func (s *ModerationService) ListContacts(ctx context.Context) ([]*model.ContactMessage, error) {
	return s.contactRepo.List(ctx)
}

// ListMyContacts returns the messages filed by userID
func (s *ModerationService) ListMyContacts(ctx context.Context, userID string) ([]*model.ContactMessage, error) {
	return s.contactRepo.ListByUser(ctx, userID)
}

// UpdateContact sets the status and response. Statuses may move in any order.
func (s *ModerationService) UpdateContact(ctx context.Context, req model.UpdateContactRequest) (*model.ContactMessage, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrMissingFields
	}
	var status model.ContactStatus
	if req.Status != nil {
		status = model.ContactStatus(*req.Status)
		if !status.IsValid() {
			return nil, ErrInvalidContactStatus
		}
	}
	if req.Response != nil && len(*req.Response) > model.MaxAdminMessageLength {
		return nil, ErrFieldTooLong
	}

	contact, err := s.contactRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrContactNotFound
	}

	if req.Status != nil {
		contact.Status = status
	}
	replied := strings.TrimSpace(derefString(req.Response)) != ""
	if replied {
		now := s.now()
		contact.Response = req.Response
		contact.RespondedAt = &now
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	if replied {
		s.notify(ctx, contact.UserID, "Reply: "+contact.Subject, *req.Response)
	}
	return contact, nil
}

func (s *ModerationService) notify(ctx context.Context, userID, title, message string) {
	if s.notifier == nil || userID == "" {
		return
	}
	if _, err := s.notifier.Notify(ctx, userID, model.NotificationTypeSystem, title, message); err != nil {
		slog.Warn("failed to notify author",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
