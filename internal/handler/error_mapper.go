package handler

import (
	"errors"
	"log/slog"

	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

// MapServiceError converts a service error to the failure envelope.
// Unknown errors become a generic 500 and are logged.
func MapServiceError(err error) *model.APIError {
	if err == nil {
		return nil
	}

	var banned *service.BannedError
	if errors.As(err, &banned) {
		return model.NewBannedError(banned.Reason)
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError("Invalid credentials")
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrTokenExpired):
		return model.NewUnauthorizedError("")

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrForbidden):
		return model.NewForbiddenError("")
	case errors.Is(err, service.ErrCannotSanctionAdmin):
		return model.NewForbiddenError("Administrators cannot be moderated")
	case errors.Is(err, service.ErrCannotSanctionSelf):
		return model.NewForbiddenError("You cannot moderate your own account")
	case errors.Is(err, service.ErrCannotDemoteSelf):
		return model.NewForbiddenError("You cannot remove your own administrator role")
	case errors.Is(err, service.ErrUserBanned):
		return model.NewBannedError("")

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("User")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("Event")
	case errors.Is(err, service.ErrMediaNotFound):
		return model.NewNotFoundError("Media")
	case errors.Is(err, service.ErrReportNotFound):
		return model.NewNotFoundError("Report")
	case errors.Is(err, service.ErrContactNotFound):
		return model.NewNotFoundError("Contact message")
	case errors.Is(err, database.ErrNotFound):
		return model.NewNotFoundError("Record")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, database.ErrDuplicate):
		return model.NewConflictError("Email already registered")
	case errors.Is(err, service.ErrMediaNotPending):
		return model.NewConflictError("Media item has already been reviewed")

	// ===== Validation Errors → 400 =====
	case errors.Is(err, service.ErrMissingFields):
		return model.NewValidationError("Missing fields")
	case errors.Is(err, service.ErrMissingCredentials):
		return model.NewValidationError("Missing credentials")
	case errors.Is(err, service.ErrNewEmailRequired):
		return model.NewValidationError("New email required")
	case errors.Is(err, service.ErrMessageRequired):
		return model.NewValidationError("Message required")
	case errors.Is(err, service.ErrUnderConstructionRequired):
		return model.NewValidationError("underConstruction boolean required")
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordTooLong),
		errors.Is(err, service.ErrFieldTooLong),
		errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidURL),
		errors.Is(err, service.ErrInvalidReportType),
		errors.Is(err, service.ErrInvalidReportStatus),
		errors.Is(err, service.ErrInvalidContactStatus),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidEventTime):
		return model.NewValidationError(sentence(err.Error()))

	// ===== Default → 500 =====
	default:
		slog.Error("unhandled service error", slog.String("error", err.Error()))
		return model.NewInternalError("")
	}
}

// sentence upper-cases the first letter of a sentinel message
func sentence(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
