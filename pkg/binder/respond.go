package binder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/fieldrules/pkg/file"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

// ErrorResponse is the JSON body written by WriteError.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the error code, a summary and per-field messages.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// WriteError renders err as JSON. Validation errors become 422 with
// per-field details and request parsing errors map to 4xx codes.
// Anything else is reported as 500 without leaking the error text.
func WriteError(w http.ResponseWriter, err error) error {
	status, detail := classify(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(ErrorResponse{Error: detail})
}

func classify(err error) (int, ErrorDetail) {
	if errs := validator.ExtractValidationErrors(err); !errs.IsEmpty() {
		return http.StatusUnprocessableEntity, ErrorDetail{
			Code:    "validation_error",
			Message: validator.ErrValidationFailed.Error(),
			Details: errs.Map(),
		}
	}

	switch {
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, ErrorDetail{Code: "unsupported_media_type", Message: err.Error()}
	case errors.Is(err, ErrFailedToParseJSON),
		errors.Is(err, ErrFailedToParseForm),
		errors.Is(err, ErrFailedToParseQuery):
		return http.StatusBadRequest, ErrorDetail{Code: "bad_request", Message: err.Error()}
	case errors.Is(err, file.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, ErrorDetail{Code: "payload_too_large", Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout, ErrorDetail{Code: "request_timeout", Message: http.StatusText(http.StatusRequestTimeout)}
	default:
		return http.StatusInternalServerError, ErrorDetail{Code: "internal_error", Message: http.StatusText(http.StatusInternalServerError)}
	}
}
