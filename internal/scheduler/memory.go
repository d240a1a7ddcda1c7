package scheduler

import (
	"context"
	"sort"
	"sync"

	"github.com/aqustica12/diyetup-backend/internal/ledger"
)

// InMemoryStore is a Store for tests and local runs (USE_MEMORY_STORE=true).
type InMemoryStore struct {
	mu           sync.RWMutex
	assignments  map[string]ledger.Assignment
	appointments map[string]Appointment
	allowOverlap bool
}

// NewInMemoryStore creates an in-memory store. allowOverlap mirrors the
// BOOKING_ALLOW_OVERLAP policy.
func NewInMemoryStore(allowOverlap bool) *InMemoryStore {
	return &InMemoryStore{
		assignments:  make(map[string]ledger.Assignment),
		appointments: make(map[string]Appointment),
		allowOverlap: allowOverlap,
	}
}

// GetAssignment returns the client's current assignment, or nil when none.
func (s *InMemoryStore) GetAssignment(ctx context.Context, clientID string) (*ledger.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assignments[clientID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// CreateBooking stores the appointment and assignment under one lock.
func (s *InMemoryStore) CreateBooking(ctx context.Context, appt *Appointment, next *ledger.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.allowOverlap {
		for _, existing := range s.appointments {
			if existing.Date == appt.Date && existing.Time == appt.Time {
				return ErrSlotTaken
			}
		}
	}

	s.appointments[appt.ID] = *appt
	if next != nil {
		s.assignments[next.ClientID] = *next
	}
	return nil
}

// GetAppointment returns the appointment with the given ID.
func (s *InMemoryStore) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

// ListAppointmentsByDate returns the day's appointments ordered by slot.
func (s *InMemoryStore) ListAppointmentsByDate(ctx context.Context, date string) ([]*Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Appointment
	for _, a := range s.appointments {
		if a.Date == date {
			copied := a
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// UpdateAppointmentStatus sets the status of an existing appointment.
func (s *InMemoryStore) UpdateAppointmentStatus(ctx context.Context, id string, status AppointmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.appointments[id]
	if !ok {
		return ErrAppointmentNotFound
	}
	a.Status = status
	s.appointments[id] = a
	return nil
}
