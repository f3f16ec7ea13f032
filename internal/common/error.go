// Package common defines sentinel errors shared by the Farmily packages.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrValidation = errors.New("validation error")
	ErrDisabled   = errors.New("feature disabled")
)
