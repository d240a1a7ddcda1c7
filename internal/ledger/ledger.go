// Package ledger owns the session-package state for each client: which bundle
// they are working through, how many sessions are used, and what the next
// booking should cost. It is pure state plus transition rules; persistence and
// request validation live with the scheduler.
package ledger

import (
	"time"

	"github.com/aqustica12/diyetup-backend/internal/catalog"
)

// Assignment records which bundle a client is currently on. The package
// fields are a snapshot of the catalog entry at assignment time. Each client
// has at most one assignment; selecting a new bundle replaces it.
type Assignment struct {
	ClientID          string    `json:"client_id"`
	PackageID         string    `json:"package_id"`
	PackageName       string    `json:"package_name"`
	PackagePriceCents int64     `json:"package_price_cents"`
	TotalSessions     int       `json:"total_sessions"`
	UsedSessions      int       `json:"used_sessions"`
	StartDate         time.Time `json:"start_date"`
}

// Remaining returns the sessions left on the bundle.
func (a *Assignment) Remaining() int {
	return a.TotalSessions - a.UsedSessions
}

// State classifies a client's current bundle position.
type State int

const (
	// StateNoActivePackage means no assignment is on file.
	StateNoActivePackage State = iota
	// StateActive means the bundle has more than one session left.
	StateActive
	// StateLastSession means exactly one session is left; the UI surfaces a
	// final-session warning.
	StateLastSession
	// StateExhausted means the bundle is fully consumed; a new bundle must be
	// selected before booking against a package again.
	StateExhausted
)

// String returns the wire label for the state.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateLastSession:
		return "last_session"
	case StateExhausted:
		return "exhausted"
	default:
		return "none"
	}
}

// Classify reports the bundle state for the given assignment, which may be nil.
func Classify(a *Assignment) State {
	switch {
	case a == nil:
		return StateNoActivePackage
	case a.Remaining() > 1:
		return StateActive
	case a.Remaining() == 1:
		return StateLastSession
	default:
		return StateExhausted
	}
}

// Consumption is the outcome of consuming one session: the next assignment to
// persist and the pricing/session stamp for the appointment being booked.
type Consumption struct {
	Assignment    Assignment
	SessionNumber int
	TotalSessions int
	PriceCents    int64
	NewBundle     bool
}

// Consume applies one session against the chosen package. When current is an
// open assignment for the same package, the session continues the bundle at
// zero marginal price. In every other case (no assignment, a different package
// chosen, or the prior bundle exhausted) a fresh assignment is cut from the
// catalog snapshot and the full bundle price is charged on this first session.
//
// Callers must reject exhausted-without-new-bundle requests before calling;
// Consume only distinguishes "continuing" from "new".
func Consume(current *Assignment, clientID string, pkg catalog.Package, bookingDate time.Time) Consumption {
	if current != nil && current.PackageID == pkg.ID && current.Remaining() > 0 {
		next := *current
		next.UsedSessions++
		return Consumption{
			Assignment:    next,
			SessionNumber: next.UsedSessions,
			TotalSessions: next.TotalSessions,
			PriceCents:    0,
		}
	}

	next := Assignment{
		ClientID:          clientID,
		PackageID:         pkg.ID,
		PackageName:       pkg.Name,
		PackagePriceCents: pkg.PriceCents,
		TotalSessions:     pkg.TotalSessions,
		UsedSessions:      1,
		StartDate:         bookingDate,
	}
	return Consumption{
		Assignment:    next,
		SessionNumber: 1,
		TotalSessions: pkg.TotalSessions,
		PriceCents:    pkg.PriceCents,
		NewBundle:     true,
	}
}
