package handler

import (
	"net/http"

	"github.com/forgo/community/api/internal/middleware"
	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

// MediaHandler handles the media feed, review queue and comments
type MediaHandler struct {
	mediaService *service.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// List handles GET /api/media
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.mediaService.ListApproved(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeItems(w, items)
}

// ListPending handles GET /api/media/pending
func (h *MediaHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	items, err := h.mediaService.ListPending(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeItems(w, items)
}

// Create handles POST /api/media
func (h *MediaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMediaRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	item, err := h.mediaService.Submit(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{"item": item})
}

// Approve handles POST /api/media/{id}/approve
func (h *MediaHandler) Approve(w http.ResponseWriter, r *http.Request) {
	item, err := h.mediaService.Approve(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{"item": item})
}

// Reject handles POST /api/media/{id}/reject
func (h *MediaHandler) Reject(w http.ResponseWriter, r *http.Request) {
	item, err := h.mediaService.Reject(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{"item": item})
}

// ListComments handles GET /api/media/{id}/comments
func (h *MediaHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.mediaService.ListComments(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if comments == nil {
		comments = []*model.Comment{}
	}
	WriteOK(w, Envelope{"comments": comments})
}

// AddComment handles POST /api/media/{id}/comments
func (h *MediaHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCommentRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	comment, err := h.mediaService.AddComment(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{"comment": comment})
}

func writeItems(w http.ResponseWriter, items []*model.MediaItem) {
	if items == nil {
		items = []*model.MediaItem{}
	}
	WriteOK(w, Envelope{"items": items})
}
