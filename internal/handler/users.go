package handler

import (
	"net/http"

	"github.com/forgo/community/api/internal/middleware"
	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

// UsersHandler handles the administrator account endpoints
type UsersHandler struct {
	accountService *service.AccountService
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(accountService *service.AccountService) *UsersHandler {
	return &UsersHandler{accountService: accountService}
}

// List handles GET /api/users
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.accountService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	WriteOK(w, Envelope{"users": users})
}

// Action handles POST /api/users/action
func (h *UsersHandler) Action(w http.ResponseWriter, r *http.Request) {
	var req model.UserActionRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.accountService.ApplyAction(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	body := Envelope{"action": result.Action}
	if result.User != nil {
		body["user"] = result.User
	}
	if result.Kick != nil {
		body["kick"] = result.Kick
	}
	WriteOK(w, body)
}

// SetRole handles POST /api/users/role
func (h *UsersHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req model.SetRoleRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.accountService.SetRole(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{"user": user})
}

// ListKicks handles GET /api/users/kicks
func (h *UsersHandler) ListKicks(w http.ResponseWriter, r *http.Request) {
	kicks, err := h.accountService.ListKicks(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if kicks == nil {
		kicks = []*model.KickRecord{}
	}
	WriteOK(w, Envelope{"kicks": kicks})
}
