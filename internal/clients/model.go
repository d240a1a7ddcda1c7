package clients

import (
	"strings"
	"time"
)

// Client is one person in the practice's client directory.
type Client struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateClientRequest represents the request body for registering a client
type CreateClientRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Validate validates the create client request
func (r *CreateClientRequest) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return ErrInvalidName
	}
	if r.Email == "" && r.Phone == "" {
		return ErrMissingContact
	}
	return nil
}
