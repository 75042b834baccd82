package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode represents API error codes
type ErrorCode int

const (
	// Authentication errors (1xxx)
	ErrCodeUnauthorized ErrorCode = 1001
	ErrCodeTokenExpired ErrorCode = 1002
	ErrCodeTokenInvalid ErrorCode = 1003
	ErrCodeLoginFailed  ErrorCode = 1004
	ErrCodeBanned       ErrorCode = 1005

	// Authorization errors (2xxx)
	ErrCodeForbidden ErrorCode = 2001

	// Resource errors (3xxx)
	ErrCodeNotFound ErrorCode = 3001
	ErrCodeConflict ErrorCode = 3003

	// Validation errors (4xxx)
	ErrCodeValidation   ErrorCode = 4001
	ErrCodeInvalidInput ErrorCode = 4002
	ErrCodeRateLimited  ErrorCode = 4029

	// Internal errors (5xxx)
	ErrCodeInternal ErrorCode = 5001
)

// APIError is the failure envelope every endpoint returns
type APIError struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	KickReason string    `json:"kickReason,omitempty"`
	Code       ErrorCode `json:"code,omitempty"`
	Status     int       `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the error as a JSON response
func (e *APIError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// Common error constructors

func NewUnauthorizedError(message string) *APIError {
	if message == "" {
		message = "Unauthorized"
	}
	return &APIError{
		Message: message,
		Status:  http.StatusUnauthorized,
		Code:    ErrCodeUnauthorized,
	}
}

func NewForbiddenError(message string) *APIError {
	if message == "" {
		message = "Forbidden"
	}
	return &APIError{
		Message: message,
		Status:  http.StatusForbidden,
		Code:    ErrCodeForbidden,
	}
}

// NewBannedError is returned on sign-in for an account under an active ban
func NewBannedError(kickReason string) *APIError {
	if kickReason == "" {
		kickReason = DefaultBanReason
	}
	return &APIError{
		Message:    "User is banned",
		KickReason: kickReason,
		Status:     http.StatusForbidden,
		Code:       ErrCodeBanned,
	}
}

func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Code:    ErrCodeNotFound,
	}
}

func NewValidationError(message string) *APIError {
	if message == "" {
		message = "Missing fields"
	}
	return &APIError{
		Message: message,
		Status:  http.StatusBadRequest,
		Code:    ErrCodeValidation,
	}
}

func NewConflictError(message string) *APIError {
	return &APIError{
		Message: message,
		Status:  http.StatusConflict,
		Code:    ErrCodeConflict,
	}
}

func NewInternalError(message string) *APIError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &APIError{
		Message: message,
		Status:  http.StatusInternalServerError,
		Code:    ErrCodeInternal,
	}
}

func NewBadRequestError(message string) *APIError {
	return &APIError{
		Message: message,
		Status:  http.StatusBadRequest,
		Code:    ErrCodeInvalidInput,
	}
}

func NewRateLimitError(retryAfter int) *APIError {
	return &APIError{
		Message: fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter),
		Status:  http.StatusTooManyRequests,
		Code:    ErrCodeRateLimited,
	}
}
