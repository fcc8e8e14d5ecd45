package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType tags an APIError for callers that branch on it.
type ErrorType string

const (
	// ErrorNoDepartment means the caller has no department assignment.
	ErrorNoDepartment ErrorType = "no_department"

	// ErrorGeneric covers every other failure.
	ErrorGeneric ErrorType = "generic"
)

const (
	noDepartmentPhrase = "not assigned to any department"
	noDepartmentError  = "You are not assigned to any department"
	noDepartmentHint   = "Please contact your administrator to be assigned to a department"
)

var (
	// ErrInvalidID is matched by errors.Is for every InvalidIDError.
	ErrInvalidID = errors.New("invalid ID")

	// ErrNoTokenProvider means no identity session is installed.
	ErrNoTokenProvider = errors.New("auth token provider not set")

	// ErrNoToken means the identity session could not produce a token.
	ErrNoToken = errors.New("no authentication token available")
)

// APIError is returned for every failed backend call.
// Status is 0 when no HTTP response was received.
type APIError struct {
	Type    ErrorType
	Status  int
	Message string
	Body    string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNoDepartment reports whether err is a no_department APIError.
func IsNoDepartment(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrorNoDepartment
}

// InvalidIDError is returned before any network call when an id is not positive.
type InvalidIDError struct {
	Resource string
	ID       int
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid %s ID: %d", e.Resource, e.ID)
}

// Is makes errors.Is(err, ErrInvalidID) hold.
func (e *InvalidIDError) Is(target error) bool {
	return target == ErrInvalidID
}

// CheckID rejects non-positive identifiers for resource.
func CheckID(resource string, id int) error {
	if id <= 0 {
		return &InvalidIDError{Resource: resource, ID: id}
	}
	return nil
}

// classifyResponse turns a non-2xx response into a single APIError.
// readErr is the error from reading the body, if any.
func classifyResponse(status int, body []byte, readErr error) *APIError {
	base := fmt.Sprintf("HTTP error! status: %d", status)
	e := &APIError{Type: ErrorGeneric, Status: status, Message: base}

	if readErr != nil {
		// Unreadable 404s are almost always the department case.
		if status == http.StatusNotFound {
			e.Type = ErrorNoDepartment
			e.Message = noDepartmentHint
		}
		e.Err = readErr
		return e
	}

	text := string(body)
	e.Body = text

	// parsed is set for any JSON value; fields only for JSON objects.
	var (
		parsed bool
		fields map[string]json.RawMessage
	)
	if text != "" {
		var v any
		if err := json.Unmarshal(body, &v); err != nil {
			switch {
			case status == http.StatusNotFound && strings.Contains(text, noDepartmentPhrase):
				e.Type = ErrorNoDepartment
				e.Message = noDepartmentHint
			case strings.TrimSpace(text) != "":
				e.Message = base + " - " + text
			}
		} else {
			if v == nil {
				// A null body has no fields to inspect.
				if status == http.StatusNotFound {
					e.Type = ErrorNoDepartment
					e.Message = noDepartmentHint
				}
				return e
			}
			parsed = true
			if _, ok := v.(map[string]any); ok {
				_ = json.Unmarshal(body, &fields)
			}
		}
	}

	errField := stringField(fields, "error")
	msgField := stringField(fields, "message")
	detail, hasDetail := truthyField(fields, "detail")
	message, hasMessage := truthyField(fields, "message")

	switch {
	case status == http.StatusNotFound && (errField == noDepartmentError ||
		strings.Contains(msgField, noDepartmentPhrase) ||
		strings.Contains(text, noDepartmentPhrase)):
		e.Type = ErrorNoDepartment
		switch {
		case msgField != "":
			e.Message = msgField
		case errField != "":
			e.Message = errField
		default:
			e.Message = noDepartmentHint
		}
	case status == http.StatusUnprocessableEntity && hasDetail:
		e.Message = "Validation Error: " + compact(detail)
	case status == http.StatusBadRequest:
		e.Message = "Bad Request: " + parsedJSON(parsed, body)
	case hasDetail:
		e.Message = base + " - " + compact(detail)
	case hasMessage:
		if msgField != "" {
			e.Message = base + " - " + msgField
		} else {
			e.Message = base + " - " + compact(message)
		}
	}

	return e
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// truthyField returns the raw field when it would not be falsy in JSON terms.
func truthyField(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok {
		return nil, false
	}
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "false", "0", `""`:
		return nil, false
	}
	return raw, true
}

func compact(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// parsedJSON renders the error body when it was valid JSON, or {} otherwise.
func parsedJSON(parsed bool, body []byte) string {
	if !parsed {
		return "{}"
	}
	return compact(body)
}
