package clients

import "errors"

var (
	// ErrInvalidName indicates the client name is missing or blank.
	ErrInvalidName = errors.New("full name is required")

	// ErrMissingContact indicates neither email nor phone was provided.
	ErrMissingContact = errors.New("either email or phone is required")

	// ErrClientNotFound indicates no client exists with the given ID.
	ErrClientNotFound = errors.New("client not found")
)
