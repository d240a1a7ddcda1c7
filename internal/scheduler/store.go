package scheduler

import (
	"context"

	"github.com/aqustica12/diyetup-backend/internal/ledger"
)

// Store persists appointments and package assignments. CreateBooking must
// write the appointment and the upserted assignment as one atomic unit so two
// racing bookings for a client cannot produce a lost ledger update.
type Store interface {
	// GetAssignment returns the client's current assignment, or nil when none
	// is on file.
	GetAssignment(ctx context.Context, clientID string) (*ledger.Assignment, error)

	// CreateBooking inserts the appointment and, when next is non-nil, upserts
	// the client's assignment in the same transaction. Returns ErrSlotTaken
	// when the store enforces slot exclusivity and the slot is occupied.
	CreateBooking(ctx context.Context, appt *Appointment, next *ledger.Assignment) error

	// GetAppointment returns the appointment with the given ID.
	GetAppointment(ctx context.Context, id string) (*Appointment, error)

	// ListAppointmentsByDate returns all appointments on a day, ordered by slot.
	ListAppointmentsByDate(ctx context.Context, date string) ([]*Appointment, error)

	// UpdateAppointmentStatus sets the status of an existing appointment.
	UpdateAppointmentStatus(ctx context.Context, id string, status AppointmentStatus) error
}
