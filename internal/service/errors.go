package service

import (
	"errors"
	"time"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrNewEmailRequired   = errors.New("new email required")
	ErrUserBanned         = errors.New("user is banned")
)

// ===== Session Errors =====
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
)

// ===== Authorization Errors =====
var (
	ErrForbidden           = errors.New("forbidden")
	ErrCannotSanctionAdmin = errors.New("administrators cannot be moderated")
	ErrCannotSanctionSelf  = errors.New("you cannot moderate your own account")
	ErrCannotDemoteSelf    = errors.New("you cannot remove your own administrator role")
)

// ===== Validation Errors =====
var (
	ErrMissingFields   = errors.New("missing fields")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidAction   = errors.New("action must be one of ban, unban, kick, tempban")
	ErrInvalidDuration = errors.New("duration must be a positive whole number of hours")
	ErrMessageRequired = errors.New("message required")
)

// ===== Moderation Errors =====
var (
	ErrMediaNotFound        = errors.New("media not found")
	ErrInvalidURL           = errors.New("url must be an absolute http or https address")
	ErrMediaNotPending      = errors.New("media item has already been reviewed")
	ErrReportNotFound       = errors.New("report not found")
	ErrInvalidReportType    = errors.New("type must be bug or rule-violation")
	ErrInvalidReportStatus  = errors.New("status must be pending, accepted or dismissed")
	ErrContactNotFound      = errors.New("contact message not found")
	ErrInvalidContactStatus = errors.New("status must be pending, in-progress or resolved")
	ErrInvalidCategory      = errors.New("invalid contact category")
)

// ===== Event Errors =====
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidEventTime = errors.New("endsAt must not be before startsAt")
)

// ===== Site Errors =====
var (
	ErrUnderConstructionRequired = errors.New("underConstruction boolean required")
)

// BannedError is returned when an effectively banned account signs in.
// errors.Is(err, ErrUserBanned) holds for it.
type BannedError struct {
	Reason string
	Until  *time.Time // Set for temporary bans
}

func (e *BannedError) Error() string {
	return ErrUserBanned.Error()
}

// Is reports whether target is ErrUserBanned
func (e *BannedError) Is(target error) bool {
	return target == ErrUserBanned
}
