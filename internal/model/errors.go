package model

import (
	"errors"
	"fmt"
)

// APIError is the unified error format returned by the API layer.
// Category drives the HTTP status mapping in the handlers.
type APIError struct {
	Code     string // stable machine-readable code
	Message  string // human-readable message
	Category string // auth, validation, generation, upstream, conflict
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeDuplicateAccount   = "DUPLICATE_ACCOUNT"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeGenerationFailed   = "GENERATION_FAILED"
	ErrCodeGenerationBusy     = "GENERATION_BUSY"
	ErrCodeEmailConfig        = "EMAIL_CONFIG"
	ErrCodeNetwork            = "NETWORK_ERROR"
	ErrCodePostNotFound       = "POST_NOT_FOUND"
)

func NewValidationError(reason string) *APIError {
	return &APIError{Code: ErrCodeValidation, Message: reason, Category: "validation"}
}

func NewDuplicateAccountError(email string) *APIError {
	return &APIError{Code: ErrCodeDuplicateAccount, Message: "account already exists: " + email, Category: "conflict"}
}

func NewInvalidCredentialsError() *APIError {
	return &APIError{Code: ErrCodeInvalidCredentials, Message: "invalid credentials", Category: "auth"}
}

func NewGenerationFailedError(reason string) *APIError {
	return &APIError{Code: ErrCodeGenerationFailed, Message: "calendar generation failed: " + reason, Category: "upstream"}
}

func NewGenerationBusyError() *APIError {
	return &APIError{Code: ErrCodeGenerationBusy, Message: "a generation is already in progress", Category: "conflict"}
}

func NewEmailConfigError() *APIError {
	return &APIError{Code: ErrCodeEmailConfig, Message: "email provider is not configured", Category: "upstream"}
}

func NewNetworkError(reason string) *APIError {
	return &APIError{Code: ErrCodeNetwork, Message: reason, Category: "upstream"}
}

func NewPostNotFoundError(date string) *APIError {
	return &APIError{Code: ErrCodePostNotFound, Message: "no post scheduled for " + date, Category: "validation"}
}

// AsAPIError unwraps err to an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
