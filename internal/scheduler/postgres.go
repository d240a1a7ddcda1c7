package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aqustica12/diyetup-backend/internal/ledger"
)

// PgxPool is the subset of pgxpool.Pool the store needs; pgxmock satisfies it
// in tests.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists bookings in the relational database.
type PostgresStore struct {
	pool         PgxPool
	allowOverlap bool
}

// NewPostgresStore creates a store backed by pgx. allowOverlap mirrors the
// BOOKING_ALLOW_OVERLAP policy.
func NewPostgresStore(pool PgxPool, allowOverlap bool) *PostgresStore {
	if pool == nil {
		panic("scheduler: pgx pool required")
	}
	return &PostgresStore{pool: pool, allowOverlap: allowOverlap}
}

// GetAssignment returns the client's current assignment, or nil when none.
func (s *PostgresStore) GetAssignment(ctx context.Context, clientID string) (*ledger.Assignment, error) {
	query := `
		SELECT client_id, package_id, package_name, package_price_cents,
			total_sessions, used_sessions, start_date
		FROM package_assignments
		WHERE client_id = $1
	`
	row := s.pool.QueryRow(ctx, query, clientID)
	var a ledger.Assignment
	if err := row.Scan(
		&a.ClientID,
		&a.PackageID,
		&a.PackageName,
		&a.PackagePriceCents,
		&a.TotalSessions,
		&a.UsedSessions,
		&a.StartDate,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scheduler: load assignment: %w", err)
	}
	return &a, nil
}

// CreateBooking inserts the appointment and upserts the assignment in one
// transaction.
func (s *PostgresStore) CreateBooking(ctx context.Context, appt *Appointment, next *ledger.Assignment) error {
	date, err := time.Parse(DateLayout, appt.Date)
	if err != nil {
		return fmt.Errorf("scheduler: parse booking date: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("scheduler: begin booking tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if !s.allowOverlap {
		var occupied bool
		query := `SELECT EXISTS (SELECT 1 FROM appointments WHERE date = $1 AND time = $2)`
		if err := tx.QueryRow(ctx, query, date, appt.Time).Scan(&occupied); err != nil {
			return fmt.Errorf("scheduler: check slot: %w", err)
		}
		if occupied {
			return ErrSlotTaken
		}
	}

	insertAppt := `
		INSERT INTO appointments (
			id, client_id, date, time, type, status,
			package_id, session_number, total_sessions, price_cents, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`
	if err := tx.QueryRow(ctx, insertAppt,
		appt.ID,
		appt.ClientID,
		date,
		appt.Time,
		string(appt.Type),
		string(appt.Status),
		appt.PackageID,
		appt.SessionNumber,
		appt.TotalSessions,
		appt.PriceCents,
		appt.Notes,
	).Scan(&appt.CreatedAt); err != nil {
		return fmt.Errorf("scheduler: insert appointment: %w", err)
	}

	if next != nil {
		upsert := `
			INSERT INTO package_assignments (
				client_id, package_id, package_name, package_price_cents,
				total_sessions, used_sessions, start_date
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (client_id) DO UPDATE SET
				package_id = EXCLUDED.package_id,
				package_name = EXCLUDED.package_name,
				package_price_cents = EXCLUDED.package_price_cents,
				total_sessions = EXCLUDED.total_sessions,
				used_sessions = EXCLUDED.used_sessions,
				start_date = EXCLUDED.start_date,
				updated_at = now()
		`
		if _, err := tx.Exec(ctx, upsert,
			next.ClientID,
			next.PackageID,
			next.PackageName,
			next.PackagePriceCents,
			next.TotalSessions,
			next.UsedSessions,
			next.StartDate,
		); err != nil {
			return fmt.Errorf("scheduler: upsert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("scheduler: commit booking tx: %w", err)
	}
	return nil
}

const appointmentColumns = `
	id, client_id, date, time, type, status,
	package_id, session_number, total_sessions, price_cents, notes, created_at
`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var (
		a    Appointment
		date time.Time
	)
	if err := row.Scan(
		&a.ID,
		&a.ClientID,
		&date,
		&a.Time,
		&a.Type,
		&a.Status,
		&a.PackageID,
		&a.SessionNumber,
		&a.TotalSessions,
		&a.PriceCents,
		&a.Notes,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.Date = date.Format(DateLayout)
	return &a, nil
}

// GetAppointment returns the appointment with the given ID.
func (s *PostgresStore) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	appt, err := scanAppointment(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("scheduler: load appointment: %w", err)
	}
	return appt, nil
}

// ListAppointmentsByDate returns the day's appointments ordered by slot.
func (s *PostgresStore) ListAppointmentsByDate(ctx context.Context, dateStr string) ([]*Appointment, error) {
	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("scheduler: parse date: %w", err)
	}

	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE date = $1 ORDER BY time`
	rows, err := s.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("scheduler: list appointments: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scheduler: scan appointment: %w", err)
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scheduler: iterate appointments: %w", err)
	}
	return out, nil
}

// UpdateAppointmentStatus sets the status of an existing appointment.
func (s *PostgresStore) UpdateAppointmentStatus(ctx context.Context, id string, status AppointmentStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status = $2 WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("scheduler: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
