package handler

import (
	"net/http"

	"github.com/forgo/community/api/internal/middleware"
	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

// AuthHandler handles authentication and profile endpoints
type AuthHandler struct {
	authService    *service.AuthService
	accountService *service.AccountService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		accountService: accountService,
	}
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.SignUp(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeAuthResult(w, result)
}

// SignIn handles POST /api/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req model.SignInRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.SignIn(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeAuthResult(w, result)
}

// DiscordSync handles POST /api/auth/discord-sync
func (h *AuthHandler) DiscordSync(w http.ResponseWriter, r *http.Request) {
	var req model.DiscordSyncRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.DiscordSync(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	writeAuthResult(w, result)
}

// Status handles GET /api/auth/status
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		WriteError(w, model.NewUnauthorizedError(""))
		return
	}
	WriteOK(w, Envelope{"user": user})
}

// UpdateProfile handles PUT /api/auth/update-profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.accountService.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{"user": user})
}

// StartEmailChange handles POST /api/auth/start-email-change
func (h *AuthHandler) StartEmailChange(w http.ResponseWriter, r *http.Request) {
	var req model.StartEmailChangeRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.authService.StartEmailChange(r.Context(), middleware.GetUserID(r.Context()), req.NewEmail); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{"message": "Verification codes sent"})
}

// ChangeEmail handles POST /api/auth/change-email
func (h *AuthHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	var req model.ChangeEmailRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.authService.ChangeEmail(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{"user": user})
}

func writeAuthResult(w http.ResponseWriter, result *model.AuthResult) {
	WriteOK(w, Envelope{
		"user":  result.User,
		"token": result.Token,
	})
}
