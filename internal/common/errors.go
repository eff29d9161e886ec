// Package common contains sentinel errors shared across portal layers.
// Callers should match them with errors.Is.
package common

import "errors"

var (
	// API error classes, one per backend response category.
	ErrUnauthorized = errors.New("invalid credentials")
	ErrValidation   = errors.New("validation failed")
	ErrServer       = errors.New("server error")
	ErrUnavailable  = errors.New("server unavailable")
)
