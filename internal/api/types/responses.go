package types

import (
	"errors"

	appErr "guardian/pkg/errors"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Meta struct {
	RequestID string `json:"request_id,omitempty"`
	Total     int64  `json:"total,omitempty"`
}

// FromAppError converts any error into the wire error shape, keeping
// the stable code when the error carries one.
func FromAppError(err error) *APIError {
	var ae *appErr.AppError
	if errors.As(err, &ae) {
		out := &APIError{Code: string(ae.Code), Message: ae.Message}
		if ae.Err != nil {
			out.Details = ae.Err.Error()
		}
		return out
	}
	return &APIError{Code: string(appErr.CodeUnknown), Message: err.Error()}
}
