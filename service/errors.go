package service

import (
	"errors"
	"strings"
)

// Sentinel errors for the service layer.
var (
	ErrNotFound        = errors.New("file not found")
	ErrForbidden       = errors.New("caller does not own this file")
	ErrQuotaExceeded   = errors.New("storage limit exceeded")
	ErrUnsupportedType = errors.New("file type not allowed")
)

// ValidationError carries field-level detail for malformed upload input.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "invalid file data: " + strings.Join(e.Details, "; ")
}
