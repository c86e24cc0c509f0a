package utils

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrDatabaseError        = errors.New("database error")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrNotFound             = errors.New("not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountNotAuthorized = errors.New("account is not allowed to log in")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidPage          = errors.New("invalid page parameter")
	ErrInvalidPageSize      = errors.New("invalid page size parameter")
	ErrStorage              = errors.New("object storage error")
)

// ValidationError carries user-correctable problems keyed by field name.
// Conflict is set for uniqueness violations, which are reported the same way.
type ValidationError struct {
	Fields   map[string][]string
	Conflict bool
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func NewConflictError(field, message string) *ValidationError {
	v := NewValidationError()
	v.Conflict = true
	v.Add(field, message)
	return v
}

func (v *ValidationError) Add(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// OrNil lets callers return the accumulated error only when something failed.
func (v *ValidationError) OrNil() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(v.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func IsConflict(err error) bool {
	var v *ValidationError
	return errors.As(err, &v) && v.Conflict
}
