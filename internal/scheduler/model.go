package scheduler

import (
	"time"

	"github.com/aqustica12/diyetup-backend/internal/clients"
)

// AppointmentType is how the session is delivered.
type AppointmentType string

const (
	TypeInPerson AppointmentType = "in-person"
	TypeOnline   AppointmentType = "online"
	TypePhone    AppointmentType = "phone"
)

// Valid reports whether t is a known appointment type.
func (t AppointmentType) Valid() bool {
	switch t {
	case TypeInPerson, TypeOnline, TypePhone:
		return true
	}
	return false
}

// AppointmentStatus is the booking lifecycle state. The scheduler sets it at
// creation and stores later mutations; it never transitions a status itself.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
)

// Valid reports whether s is a known appointment status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// DateLayout is the wire format for appointment dates.
const DateLayout = "2006-01-02"

// Appointment is the permanent record of what the ledger decided at booking
// time. Only Status is mutated after creation.
type Appointment struct {
	ID         string            `json:"id"`
	ClientID   string            `json:"client_id"`
	ClientName string            `json:"client_name"`
	Date       string            `json:"date"` // YYYY-MM-DD
	Time       string            `json:"time"` // slot label, e.g. "14:30"
	Type       AppointmentType   `json:"type"`
	Status     AppointmentStatus `json:"status"`

	// Package stamp; all three are nil for a standalone appointment.
	PackageID     *string `json:"package_id"`
	SessionNumber *int    `json:"session_number"`
	TotalSessions *int    `json:"total_sessions"`

	PriceCents int64     `json:"price_cents"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookingRequest is the inbound shape of a booking. Either ClientID references
// an existing client or NewClient registers one inline.
type BookingRequest struct {
	ClientID  string                       `json:"client_id,omitempty"`
	NewClient *clients.CreateClientRequest `json:"new_client,omitempty"`

	Date   string            `json:"date"`
	Time   string            `json:"time"`
	Type   AppointmentType   `json:"type"`
	Status AppointmentStatus `json:"status"`

	// PackageID selects the bundle to consume a session from. Empty means a
	// standalone appointment priced by CustomPriceCents.
	PackageID        string `json:"package_id,omitempty"`
	CustomPriceCents *int64 `json:"custom_price_cents,omitempty"`

	Notes string `json:"notes"`
}

// PackageStatus is the classify view returned for a client: the current
// assignment (if any) and its state label.
type PackageStatus struct {
	ClientID          string      `json:"client_id"`
	State             string      `json:"state"` // none | active | last_session | exhausted
	Assignment        *Assignment `json:"assignment,omitempty"`
	RemainingSessions int         `json:"remaining_sessions"`
}

// Assignment mirrors ledger.Assignment on the wire.
type Assignment struct {
	PackageID         string    `json:"package_id"`
	PackageName       string    `json:"package_name"`
	PackagePriceCents int64     `json:"package_price_cents"`
	TotalSessions     int       `json:"total_sessions"`
	UsedSessions      int       `json:"used_sessions"`
	RemainingSessions int       `json:"remaining_sessions"`
	StartDate         time.Time `json:"start_date"`
}
