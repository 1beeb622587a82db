package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	DefaultPageSize = 6
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	// Error kinds. Every error returned by a service wraps one of these so
	// the HTTP layer can pick a status without knowing the feature.
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission error")

	ErrAuthenticationRequired = fmt.Errorf("%w: authentication credentials were not provided", ErrPermission)
	ErrPermissionDenied       = fmt.Errorf("%w: you do not have permission to perform this action", ErrPermission)

	ErrParseUUID     = fmt.Errorf("%w: failed to parse UUID", ErrValidation)
	ErrTokenNotFound = fmt.Errorf("%w: token not found", ErrAuthenticationRequired)
	ErrTokenInvalid  = fmt.Errorf("%w: token invalid", ErrAuthenticationRequired)
	ErrTokenExpired  = fmt.Errorf("%w: token expired", ErrAuthenticationRequired)
)

// ValidationError carries field level messages. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Identity is the caller of a service operation. The zero value is an
// anonymous caller.
type Identity struct {
	UserID        uuid.UUID
	Role          string
	Authenticated bool
}

func Anonymous() Identity {
	return Identity{}
}

func (i Identity) IsAdmin() bool {
	return i.Authenticated && i.Role == RoleAdmin
}

type (
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}

	PaginatedResponse[T any] struct {
		Results    []T        `json:"results"`
		Pagination Pagination `json:"pagination"`
	}
)

func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}
