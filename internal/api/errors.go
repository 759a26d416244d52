package api

import (
	"errors"
	"fmt"
)

// FieldError is a field-level validation failure reported by the backend.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the normalized form of every failed API call. Transport
// failures use Status 0; callers never see a raw *url.Error or JSON
// decoding error.
//
//	var apiErr *api.Error
//	if errors.As(err, &apiErr) && apiErr.Status == 404 { ... }
type Error struct {
	Status      int          `json:"status"`
	Message     string       `json:"message"`
	FieldErrors []FieldError `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// GenericMessage is shown when the backend error body is unparseable or
// the request never reached the server.
const GenericMessage = "An unexpected error occurred"

// IsUnauthorized reports whether err is a normalized 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 401
}

// IsConflict reports whether err is a normalized 409 (e.g. duplicate
// email on signup).
func IsConflict(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 409
}

// ErrorMessage extracts the user-displayable message from a normalized
// error, falling back to the generic message for anything else.
func ErrorMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericMessage
}
