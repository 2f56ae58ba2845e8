package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the admin core
// These errors should be checked using errors.Is() instead of string matching
var (
	// ErrValidation indicates form input failed the synchronous rules
	ErrValidation = errors.New("validation failed")

	// ErrPermissionDenied indicates the current role may not perform the action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNetwork indicates a remote call did not complete
	ErrNetwork = errors.New("network error")

	// ErrServer indicates the remote API completed the call but rejected it
	ErrServer = errors.New("server error")

	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrUnknownFilter indicates a filter key outside the known set
	ErrUnknownFilter = errors.New("unknown filter key")

	// ErrInvalidTransition indicates a status change the workflow does not define
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNoSession indicates the request carries no usable session
	ErrNoSession = errors.New("no active session")

	// ErrSessionExpired indicates the session credential has expired
	ErrSessionExpired = errors.New("session expired")
)

// ValidationError carries per-field messages. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PermissionError is returned when an actor's role does not allow an action.
type PermissionError struct {
	Action string
	Role   Role
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s: role %q may not %s", ErrPermissionDenied, e.Role, e.Action)
}

func (e *PermissionError) Unwrap() error { return ErrPermissionDenied }

// NetworkError wraps a transport failure of a remote call.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrNetwork, e.Op, e.Err)
}

func (e *NetworkError) Unwrap() []error { return []error{ErrNetwork, e.Err} }

// ServerError is a structured rejection from the remote API.
type ServerError struct {
	Status      int
	Message     string
	FieldErrors map[string]string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrServer, e.Status)
	}
	return fmt.Sprintf("%s: %s", ErrServer, e.Message)
}

func (e *ServerError) Unwrap() []error {
	if e.Status == 404 {
		return []error{ErrServer, ErrNotFound}
	}
	return []error{ErrServer}
}
