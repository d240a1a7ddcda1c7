package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/aqustica12/diyetup-backend/internal/ledger"
)

func newMockStore(t *testing.T, allowOverlap bool) (pgxmock.PgxPoolIface, *PostgresStore) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, NewPostgresStore(mock, allowOverlap)
}

func packageAppointment() (*Appointment, *ledger.Assignment) {
	pkgID := "pkg-3"
	sessionNumber := 1
	totalSessions := 4
	appt := &Appointment{
		ID:            "appt-1",
		ClientID:      "client-1",
		Date:          "2025-03-10",
		Time:          "10:00",
		Type:          TypeInPerson,
		Status:        StatusPending,
		PackageID:     &pkgID,
		SessionNumber: &sessionNumber,
		TotalSessions: &totalSessions,
		PriceCents:    120000,
	}
	next := &ledger.Assignment{
		ClientID:          "client-1",
		PackageID:         "pkg-3",
		PackageName:       "4 Seans Paketi",
		PackagePriceCents: 120000,
		TotalSessions:     4,
		UsedSessions:      1,
		StartDate:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	return appt, next
}

func TestPostgresCreateBookingWithAssignment(t *testing.T) {
	mock, store := newMockStore(t, true)
	appt, next := packageAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(appt.ID, appt.ClientID, pgxmock.AnyArg(), appt.Time, "in-person", "pending",
			appt.PackageID, appt.SessionNumber, appt.TotalSessions, appt.PriceCents, appt.Notes).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("INSERT INTO package_assignments").
		WithArgs(next.ClientID, next.PackageID, next.PackageName, next.PackagePriceCents,
			next.TotalSessions, next.UsedSessions, next.StartDate).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	if err := store.CreateBooking(context.Background(), appt, next); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreateBookingStandalone(t *testing.T) {
	mock, store := newMockStore(t, true)
	appt := &Appointment{
		ID:         "appt-2",
		ClientID:   "client-1",
		Date:       "2025-03-10",
		Time:       "14:30",
		Type:       TypeOnline,
		Status:     StatusConfirmed,
		PriceCents: 30000,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(appt.ID, appt.ClientID, pgxmock.AnyArg(), appt.Time, "online", "confirmed",
			(*string)(nil), (*int)(nil), (*int)(nil), appt.PriceCents, appt.Notes).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	if err := store.CreateBooking(context.Background(), appt, nil); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreateBookingSlotTaken(t *testing.T) {
	mock, store := newMockStore(t, false)
	appt, next := packageAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(pgxmock.AnyArg(), appt.Time).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := store.CreateBooking(context.Background(), appt, next)
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestPostgresCreateBookingRollsBackOnAssignmentFailure(t *testing.T) {
	mock, store := newMockStore(t, true)
	appt, next := packageAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(appt.ID, appt.ClientID, pgxmock.AnyArg(), appt.Time, "in-person", "pending",
			appt.PackageID, appt.SessionNumber, appt.TotalSessions, appt.PriceCents, appt.Notes).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("INSERT INTO package_assignments").
		WithArgs(next.ClientID, next.PackageID, next.PackageName, next.PackagePriceCents,
			next.TotalSessions, next.UsedSessions, next.StartDate).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if err := store.CreateBooking(context.Background(), appt, next); err == nil {
		t.Fatal("expected error when assignment upsert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetAssignment(t *testing.T) {
	mock, store := newMockStore(t, true)

	mock.ExpectQuery("SELECT client_id, package_id").
		WithArgs("client-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"client_id", "package_id", "package_name", "package_price_cents",
			"total_sessions", "used_sessions", "start_date",
		}).AddRow("client-1", "pkg-3", "4 Seans Paketi", int64(120000), 4, 2, time.Now()))

	a, err := store.GetAssignment(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("get assignment: %v", err)
	}
	if a == nil || a.Remaining() != 2 {
		t.Fatalf("expected remaining 2, got %+v", a)
	}
}

func TestPostgresGetAssignmentNone(t *testing.T) {
	mock, store := newMockStore(t, true)

	mock.ExpectQuery("SELECT client_id, package_id").
		WithArgs("client-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"client_id", "package_id", "package_name", "package_price_cents",
			"total_sessions", "used_sessions", "start_date",
		}))

	a, err := store.GetAssignment(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("get assignment: %v", err)
	}
	if a != nil {
		t.Fatalf("expected nil assignment, got %+v", a)
	}
}

func TestPostgresUpdateStatusNotFound(t *testing.T) {
	mock, store := newMockStore(t, true)

	mock.ExpectExec("UPDATE appointments").
		WithArgs("missing", "confirmed").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := store.UpdateAppointmentStatus(context.Background(), "missing", StatusConfirmed)
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}
