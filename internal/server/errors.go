package server

import "errors"

var (
	// ErrNotFound is returned when a document lookup matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert would violate a uniqueness
	// rule, e.g. a taken username.
	ErrDuplicate = errors.New("duplicate resource")

	// ErrAcceptFailed is returned when a challenge-accept update matched
	// zero documents.
	ErrAcceptFailed = errors.New("accept failed")
)

// Error codes surfaced in the JSON error envelope.
const (
	codeNotFound   = "RESOURCE_NOT_FOUND"
	codeDuplicate  = "DUPLICATE_RESOURCE"
	codeValidation = "VALIDATION_ERROR"
	codeAccept     = "ACCEPT_FAILED"
	codeInternal   = "INTERNAL_SERVER_ERROR"
)
