package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/aqustica12/diyetup-backend/internal/catalog"
	"github.com/aqustica12/diyetup-backend/internal/clients"
	"github.com/aqustica12/diyetup-backend/internal/ledger"
	"github.com/aqustica12/diyetup-backend/internal/observability/metrics"
	"github.com/aqustica12/diyetup-backend/internal/slots"
	"github.com/aqustica12/diyetup-backend/pkg/logging"
)

var schedulerTracer = otel.Tracer("diyetup.internal.scheduler")

// Directory is the client-directory contract the scheduler consumes: resolve
// an existing client, or register the inline new-client record of a booking.
type Directory interface {
	GetByID(ctx context.Context, id string) (*clients.Client, error)
	Create(ctx context.Context, req *clients.CreateClientRequest) (*clients.Client, error)
}

// Service validates booking requests, prices them through the ledger, and
// persists the outcome.
type Service struct {
	store     Store
	catalog   catalog.Source
	directory Directory
	logger    *logging.Logger
	metrics   *metrics.BookingMetrics
	locks     *clientLocks
}

// NewService constructs a scheduler service.
func NewService(store Store, source catalog.Source, directory Directory, logger *logging.Logger, m *metrics.BookingMetrics) *Service {
	if store == nil {
		panic("scheduler: store required")
	}
	if source == nil {
		panic("scheduler: catalog source required")
	}
	if directory == nil {
		panic("scheduler: client directory required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:     store,
		catalog:   source,
		directory: directory,
		logger:    logger,
		metrics:   m,
		locks:     newClientLocks(),
	}
}

// Book runs the full booking flow: validation in fixed order, exhaustion gate,
// pricing via the ledger, and one transactional write. A rejected request
// leaves all state untouched.
func (s *Service) Book(ctx context.Context, req *BookingRequest) (*Appointment, error) {
	start := time.Now()
	ctx, span := schedulerTracer.Start(ctx, "scheduler.book")
	defer span.End()

	appt, err := s.book(ctx, req)
	outcome := "booked"
	if err != nil {
		outcome = outcomeLabel(err)
		span.RecordError(err)
	}
	s.metrics.ObserveBooking(outcome, time.Since(start).Seconds())
	if appt != nil {
		span.SetAttributes(
			attribute.String("diyetup.client_id", appt.ClientID),
			attribute.String("diyetup.appointment_id", appt.ID),
		)
	}
	return appt, err
}

func (s *Service) book(ctx context.Context, req *BookingRequest) (*Appointment, error) {
	// 1. Client reference: an existing ID or a complete new-client record.
	var existing *clients.Client
	switch {
	case req.ClientID != "":
		c, err := s.directory.GetByID(ctx, req.ClientID)
		if err != nil {
			if errors.Is(err, clients.ErrClientNotFound) {
				return nil, ErrInvalidClient
			}
			return nil, fmt.Errorf("scheduler: resolve client: %w", err)
		}
		existing = c
	case req.NewClient != nil:
		if err := req.NewClient.Validate(); err != nil {
			return nil, ErrInvalidClient
		}
	default:
		return nil, ErrInvalidClient
	}

	// 2. Calendar date and generated slot.
	if _, err := time.Parse(DateLayout, req.Date); err != nil {
		return nil, ErrInvalidSlot
	}
	if !slots.Contains(req.Time) {
		return nil, ErrInvalidSlot
	}

	// 3. Type and status.
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	// 4. Standalone appointments always need an explicit price.
	if req.PackageID == "" {
		if req.CustomPriceCents == nil || *req.CustomPriceCents < 0 {
			return nil, ErrMissingPrice
		}
	}

	// Stateless validation passed; register the inline client now.
	client := existing
	if client == nil {
		created, err := s.directory.Create(ctx, req.NewClient)
		if err != nil {
			return nil, fmt.Errorf("scheduler: register client: %w", err)
		}
		client = created
		s.logger.Info("client registered during booking", "client_id", client.ID)
	}

	lock := s.locks.forClient(client.ID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.store.GetAssignment(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	// 5. Exhaustion gate: a spent bundle blocks booking until a different
	// bundle is chosen.
	if ledger.Classify(current) == ledger.StateExhausted {
		if req.PackageID == "" || req.PackageID == current.PackageID {
			s.metrics.ObserveExhaustedRejection()
			return nil, ErrPackageExhausted
		}
	}

	appt := &Appointment{
		ID:         uuid.New().String(),
		ClientID:   client.ID,
		ClientName: client.FullName,
		Date:       req.Date,
		Time:       req.Time,
		Type:       req.Type,
		Status:     req.Status,
		Notes:      req.Notes,
		CreatedAt:  time.Now().UTC(),
	}

	var next *ledger.Assignment
	if req.PackageID == "" {
		appt.PriceCents = *req.CustomPriceCents
	} else {
		pkg, err := s.catalog.Get(ctx, req.PackageID)
		if err != nil {
			return nil, err
		}
		bookingDate, _ := time.Parse(DateLayout, req.Date)
		c := ledger.Consume(current, client.ID, *pkg, bookingDate)

		appt.PackageID = &c.Assignment.PackageID
		appt.SessionNumber = &c.SessionNumber
		appt.TotalSessions = &c.TotalSessions
		appt.PriceCents = c.PriceCents
		next = &c.Assignment
		s.metrics.ObserveSessionConsumed(c.NewBundle)
	}

	if err := s.store.CreateBooking(ctx, appt, next); err != nil {
		return nil, err
	}

	s.logger.Info("appointment booked",
		"appointment_id", appt.ID,
		"client_id", appt.ClientID,
		"date", appt.Date,
		"time", appt.Time,
		"price_cents", appt.PriceCents,
		"package_id", req.PackageID,
	)
	return appt, nil
}

// PackageStatus reports the client's current bundle state for the UI: the
// final-session warning and the forced re-selection both key off this.
func (s *Service) PackageStatus(ctx context.Context, clientID string) (*PackageStatus, error) {
	ctx, span := schedulerTracer.Start(ctx, "scheduler.package_status")
	defer span.End()
	span.SetAttributes(attribute.String("diyetup.client_id", clientID))

	if _, err := s.directory.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, clients.ErrClientNotFound) {
			return nil, ErrInvalidClient
		}
		return nil, fmt.Errorf("scheduler: resolve client: %w", err)
	}

	current, err := s.store.GetAssignment(ctx, clientID)
	if err != nil {
		return nil, err
	}

	status := &PackageStatus{
		ClientID: clientID,
		State:    ledger.Classify(current).String(),
	}
	if current != nil {
		status.RemainingSessions = current.Remaining()
		status.Assignment = &Assignment{
			PackageID:         current.PackageID,
			PackageName:       current.PackageName,
			PackagePriceCents: current.PackagePriceCents,
			TotalSessions:     current.TotalSessions,
			UsedSessions:      current.UsedSessions,
			RemainingSessions: current.Remaining(),
			StartDate:         current.StartDate,
		}
	}
	return status, nil
}

// GetAppointment returns a single appointment.
func (s *Service) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	return s.store.GetAppointment(ctx, id)
}

// ListByDate returns the day's appointments for calendar rendering.
func (s *Service) ListByDate(ctx context.Context, date string) ([]*Appointment, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, ErrInvalidSlot
	}
	return s.store.ListAppointmentsByDate(ctx, date)
}

// UpdateStatus stores a status mutation made by the calendar UI.
func (s *Service) UpdateStatus(ctx context.Context, id string, status AppointmentStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if err := s.store.UpdateAppointmentStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info("appointment status updated", "appointment_id", id, "status", status)
	return nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrInvalidClient):
		return "invalid_client"
	case errors.Is(err, ErrInvalidSlot):
		return "invalid_slot"
	case errors.Is(err, ErrInvalidType):
		return "invalid_type"
	case errors.Is(err, ErrInvalidStatus):
		return "invalid_status"
	case errors.Is(err, ErrMissingPrice):
		return "missing_price"
	case errors.Is(err, ErrPackageExhausted):
		return "package_exhausted"
	case errors.Is(err, ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, catalog.ErrPackageNotFound):
		return "package_not_found"
	default:
		return "error"
	}
}
