package mailgun

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned at construction.
var (
	// ErrMissingAPIKey is returned by New when no API key is configured.
	ErrMissingAPIKey = errors.New("mailgun: api key is required")

	// ErrMissingDomain is returned by New when no domain is configured.
	ErrMissingDomain = errors.New("mailgun: domain is required")
)

// APIError represents a non-2xx response from the Mailgun API.
type APIError struct {
	StatusCode int
	Message    string

	// Body is the raw provider response, kept for callers that need more
	// than the parsed message.
	Body []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mailgun: API error %d: %s", e.StatusCode, e.Message)
}

// apiErrorEnvelope matches the Mailgun API error body.
type apiErrorEnvelope struct {
	Message string `json:"message"`
}

func parseAPIError(statusCode int, body []byte) error {
	var env apiErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return &APIError{
			StatusCode: statusCode,
			Message:    env.Message,
			Body:       body,
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    strings.TrimSpace(string(body)),
		Body:       body,
	}
}

// IsAPIError checks whether err is an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
