package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/plantx/internal/shared"
)

// DefaultErrorMessage is shown when a failure carries no backend detail.
const DefaultErrorMessage = "An error occurred"

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Detail)
}

// Unwrap maps 401 to [shared.ErrNotAuthenticated] and everything else to [shared.ErrAPIRequest].
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return shared.ErrNotAuthenticated
	}
	return shared.ErrAPIRequest
}

// ErrorMessage extracts the user-facing message from err.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return DefaultErrorMessage
}

// newAPIError builds an [APIError] from a response body shaped like {"detail": ...}.
//
// The detail is either a string or a list of validation entries carrying "msg".
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		apiErr.Detail = detail
		return apiErr
	}

	var entries []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &entries); err == nil {
		msgs := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		apiErr.Detail = strings.Join(msgs, "; ")
	}
	return apiErr
}
