package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/model"
)

// ReportRepository handles report data access
type ReportRepository struct {
	db database.Database
}

// NewReportRepository creates a new report repository
func NewReportRepository(db database.Database) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create creates a new report
func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	query := `
		CREATE type::thing("report", $id) CONTENT {
			user_id: $user_id,
			type: $type,
			title: $title,
			description: $description,
			evidence: $evidence,
			status: $status,
			admin_message: NONE,
			created_on: $created_on,
			updated_on: NONE
		}
	`
	vars := map[string]interface{}{
		"id":          report.ID,
		"user_id":     report.UserID,
		"type":        report.Type,
		"title":       report.Title,
		"description": report.Description,
		"evidence":    ptrToNone(report.Evidence),
		"status":      report.Status,
		"created_on":  dateTime(report.CreatedAt),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID retrieves a report by ID
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*model.Report, error) {
	// Direct record access - more efficient than WHERE id =
	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::thing("report", $id)`, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	row := singleRow(result)
	if row == nil {
		return nil, nil
	}
	return parseReportRow(row), nil
}

// Update writes the status and administrator message in one statement
func (r *ReportRepository) Update(ctx context.Context, report *model.Report) error {
	query := `
		UPDATE type::thing("report", $id) SET
			status = $status,
			admin_message = $admin_message,
			updated_on = $updated_on
	`
	vars := map[string]interface{}{
		"id":            report.ID,
		"status":        report.Status,
		"admin_message": ptrToNone(report.AdminMessage),
		"updated_on":    dateTimePtr(report.UpdatedAt),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	if len(rowsOf(result)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// List returns every report, newest first
func (r *ReportRepository) List(ctx context.Context) ([]*model.Report, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM report ORDER BY created_on DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}
	return parseReportRows(result), nil
}

// ListByUser returns the reports filed by one account, newest first
func (r *ReportRepository) ListByUser(ctx context.Context, userID string) ([]*model.Report, error) {
	query := `SELECT * FROM report WHERE user_id = $user_id ORDER BY created_on DESC`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}
	return parseReportRows(result), nil
}

func parseReportRows(result []interface{}) []*model.Report {
	rows := rowsOf(result)
	reports := make([]*model.Report, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, parseReportRow(row))
	}
	return reports
}

func parseReportRow(m map[string]interface{}) *model.Report {
	return &model.Report{
		ID:           recordKey(m["id"]),
		UserID:       getString(m, "user_id"),
		Type:         model.ReportType(getString(m, "type")),
		Title:        getString(m, "title"),
		Description:  getString(m, "description"),
		Evidence:     getStringPtr(m, "evidence"),
		Status:       model.ReportStatus(getString(m, "status")),
		AdminMessage: getStringPtr(m, "admin_message"),
		CreatedAt:    parseTime(m["created_on"]),
		UpdatedAt:    getTime(m, "updated_on"),
	}
}

// ContactRepository handles contact inbox data access
type ContactRepository struct {
	db database.Database
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db database.Database) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create stores a contact message
func (r *ContactRepository) Create(ctx context.Context, contact *model.ContactMessage) error {
	query := `
		CREATE type::thing("contact", $id) CONTENT {
			user_id: $user_id,
			subject: $subject,
			category: $category,
			message: $message,
			status: $status,
			response: NONE,
			responded_on: NONE,
			report_id: $report_id,
			created_on: $created_on
		}
	`
	vars := map[string]interface{}{
		"id":         contact.ID,
		"user_id":    contact.UserID,
		"subject":    contact.Subject,
		"category":   contact.Category,
		"message":    contact.Message,
		"status":     contact.Status,
		"report_id":  ptrToNone(contact.ReportID),
		"created_on": dateTime(contact.CreatedAt),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// GetByID retrieves a contact message by ID
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::thing("contact", $id)`, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	row := singleRow(result)
	if row == nil {
		return nil, nil
	}
	return parseContactRow(row), nil
}

// Update writes the status and response in one statement
func (r *ContactRepository) Update(ctx context.Context, contact *model.ContactMessage) error {
	query := `
		UPDATE type::thing("contact", $id) SET
			status = $status,
			response = $response,
			responded_on = $responded_on
	`
	vars := map[string]interface{}{
		"id":           contact.ID,
		"status":       contact.Status,
		"response":     ptrToNone(contact.Response),
		"responded_on": dateTimePtr(contact.RespondedAt),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if len(rowsOf(result)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// List returns every contact message, newest first
func (r *ContactRepository) List(ctx context.Context) ([]*model.ContactMessage, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM contact ORDER BY created_on DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}
	return parseContactRows(result), nil
}

// ListByUser returns the messages filed by one account, newest first
func (r *ContactRepository) ListByUser(ctx context.Context, userID string) ([]*model.ContactMessage, error) {
	query := `SELECT * FROM contact WHERE user_id = $user_id ORDER BY created_on DESC`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}
	return parseContactRows(result), nil
}

func parseContactRows(result []interface{}) []*model.ContactMessage {
	rows := rowsOf(result)
	contacts := make([]*model.ContactMessage, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, parseContactRow(row))
	}
	return contacts
}

func parseContactRow(m map[string]interface{}) *model.ContactMessage {
	return &model.ContactMessage{
		ID:          recordKey(m["id"]),
		UserID:      getString(m, "user_id"),
		Subject:     getString(m, "subject"),
		Category:    model.ContactCategory(getString(m, "category")),
		Message:     getString(m, "message"),
		Status:      model.ContactStatus(getString(m, "status")),
		Response:    getStringPtr(m, "response"),
		RespondedAt: getTime(m, "responded_on"),
		ReportID:    getStringPtr(m, "report_id"),
		CreatedAt:   parseTime(m["created_on"]),
	}
}
