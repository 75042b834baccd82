package handler

import (
	"net/http"

	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

// SiteHandler handles the liveness probes and the under-construction flag
type SiteHandler struct {
	siteService *service.SiteService
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(siteService *service.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

// Ping handles GET /api/ping
func (h *SiteHandler) Ping(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, Envelope{"message": "Hello from Express server!"})
}

// Demo handles GET /api/demo
func (h *SiteHandler) Demo(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, Envelope{"message": "Demo endpoint working"})
}

// Status handles GET /api/site-status
func (h *SiteHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.siteService.Status(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeSiteStatus(w, status)
}

// Set handles POST /api/admin/site-status
func (h *SiteHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req model.SetSiteStatusRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		// A non-boolean value fails to decode
		WriteError(w, MapServiceError(service.ErrUnderConstructionRequired))
		return
	}

	status, err := h.siteService.SetUnderConstruction(r.Context(), req.UnderConstruction)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeSiteStatus(w, status)
}

// Toggle handles POST /api/admin/site-status/toggle
func (h *SiteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	status, err := h.siteService.ToggleUnderConstruction(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeSiteStatus(w, status)
}

func writeSiteStatus(w http.ResponseWriter, status *model.SiteStatus) {
	WriteOK(w, Envelope{"underConstruction": status.UnderConstruction})
}
