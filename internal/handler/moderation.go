package handler

import (
	"net/http"

	"github.com/forgo/community/api/internal/middleware"
	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

// ModerationHandler handles the report and contact inboxes
type ModerationHandler struct {
	moderationService *service.ModerationService
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(moderationService *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// Reports

// CreateReport handles POST /api/reports
func (h *ModerationHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReportRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	report, err := h.moderationService.CreateReport(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{"report": report})
}

// MyReports handles GET /api/reports/my
func (h *ModerationHandler) MyReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.moderationService.ListMyReports(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeReports(w, reports)
}

// ListReports handles GET /api/reports
func (h *ModerationHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.moderationService.ListReports(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeReports(w, reports)
}

// UpdateReport handles POST /api/reports/update
func (h *ModerationHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateReportRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	report, err := h.moderationService.UpdateReport(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{"report": report})
}

// Contacts

// CreateContact handles POST /api/contact
func (h *ModerationHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContactRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	contact, err := h.moderationService.CreateContact(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{
		"message":   "Contact message submitted",
		"contactId": contact.ID,
	})
}

// MyContacts handles GET /api/contact/my
func (h *ModerationHandler) MyContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.moderationService.ListMyContacts(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeContacts(w, contacts)
}

// ListContacts handles GET /api/contact
func (h *ModerationHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.moderationService.ListContacts(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeContacts(w, contacts)
}

// UpdateContact handles POST /api/contact/update
func (h *ModerationHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateContactRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	contact, err := h.moderationService.UpdateContact(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{"contact": contact})
}

func writeReports(w http.ResponseWriter, reports []*model.Report) {
	if reports == nil {
		reports = []*model.Report{}
	}
	WriteOK(w, Envelope{"reports": reports})
}

func writeContacts(w http.ResponseWriter, contacts []*model.ContactMessage) {
	if contacts == nil {
		contacts = []*model.ContactMessage{}
	}
	WriteOK(w, Envelope{"contacts": contacts})
}
