package handler

import (
	"net/http"

	"github.com/forgo/community/api/internal/middleware"
	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

// NotificationHandler serves the caller's notices
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.notificationService.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if list == nil {
		list = []*model.Notification{}
	}
	WriteOK(w, Envelope{"notifications": list})
}
