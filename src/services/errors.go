package services

import "errors"

// Sentinel errors for explicit error handling
// These errors allow callers to distinguish between different failure modes
// using errors.Is() instead of string matching

var (
	// ErrInvalidCredentials indicates authentication failed
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWrongPassword indicates the supplied current password does not match
	ErrWrongPassword = errors.New("wrong current password")

	// ErrNoChange indicates a credential update with nothing to update
	ErrNoChange = errors.New("no change requested")

	// ErrValidation indicates a missing or malformed required field
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the target row does not exist
	ErrNotFound = errors.New("not found")

	// ErrHasActiveProducts guards category deletion
	ErrHasActiveProducts = errors.New("category has active products")

	// ErrInvalidUpload indicates a rejected image upload
	ErrInvalidUpload = errors.New("invalid upload")
)
