package scheduler

import "sync"

// clientLocks serializes bookings per client. Consume is a read-modify-write
// over the client's assignment, so two racing bookings for the same client
// must not interleave between GetAssignment and CreateBooking.
type clientLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newClientLocks() *clientLocks {
	return &clientLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *clientLocks) forClient(clientID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[clientID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[clientID] = m
	}
	return m
}
