package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSessionExpired is returned for any 401 response after the token
	// store was cleared. Callers decide where to send the user; this layer
	// performs no navigation.
	ErrSessionExpired = errors.New("api: session expired")

	// ErrNotFound is returned when a record addressed by id does not exist.
	ErrNotFound = errors.New("api: product not found")
)

// ValidationError carries the server's field errors for a 400 response.
// Fields is empty when the server gave no detail.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "api: invalid data"
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], "; ")))
	}
	return "api: invalid data (" + strings.Join(parts, ", ") + ")"
}

// ServerError is any 5xx response. Not retried.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("api: server failure (status %d), try again", e.Status)
}

// TransportError is a request that never produced a response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: connection failed, %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// parseValidationError decodes the ASP.NET-style problem body
// {"errors": {"Nome": ["msg", ...]}}; field names are lowered so callers
// can match them against form fields.
func parseValidationError(body []byte) *ValidationError {
	var payload struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Errors) == 0 {
		return &ValidationError{}
	}

	fields := make(map[string][]string, len(payload.Errors))
	for f, msgs := range payload.Errors {
		fields[strings.ToLower(f)] = msgs
	}
	return &ValidationError{Fields: fields}
}
