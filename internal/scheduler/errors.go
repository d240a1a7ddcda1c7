package scheduler

import "errors"

// Validation errors. All are detected before any write, so a rejected request
// leaves every store untouched.
var (
	// ErrInvalidClient indicates the request referenced no existing client and
	// carried no complete new-client record.
	ErrInvalidClient = errors.New("client reference is invalid")

	// ErrInvalidSlot indicates the date is not a calendar date or the time is
	// not one of the generated half-hour slots.
	ErrInvalidSlot = errors.New("requested slot is not bookable")

	// ErrInvalidType indicates an unknown appointment type.
	ErrInvalidType = errors.New("appointment type is invalid")

	// ErrInvalidStatus indicates an unknown appointment status.
	ErrInvalidStatus = errors.New("appointment status is invalid")

	// ErrMissingPrice indicates a standalone appointment without a
	// non-negative custom price.
	ErrMissingPrice = errors.New("standalone appointment requires a non-negative price")

	// ErrPackageExhausted indicates the client's bundle is fully consumed and
	// the request did not select a different bundle.
	ErrPackageExhausted = errors.New("package is exhausted; select a new package")

	// ErrSlotTaken indicates the date+time slot is already occupied. Only
	// returned when overlap rejection is enabled.
	ErrSlotTaken = errors.New("slot is already booked")

	// ErrAppointmentNotFound indicates no appointment exists with the given ID.
	ErrAppointmentNotFound = errors.New("appointment not found")
)
