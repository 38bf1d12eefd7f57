package jobsapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrTransport wraps network failures and timeouts.
	ErrTransport = errors.New("job api unreachable")
	// ErrMalformed reports a 200 response whose body could not be understood.
	ErrMalformed = errors.New("job api returned a malformed body")
)

// StatusError is returned when the job API answers with a non-200 status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("job api %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("job api %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// StatusCode extracts the upstream status from err, or 0 when err is not a StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

func extractAPIError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4<<10))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Detail any    `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if s, ok := payload.Detail.(string); ok && s != "" {
			return s
		}
	}
	return string(data)
}
