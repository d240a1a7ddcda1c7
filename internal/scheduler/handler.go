package scheduler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aqustica12/diyetup-backend/internal/catalog"
	"github.com/aqustica12/diyetup-backend/internal/slots"
	"github.com/aqustica12/diyetup-backend/pkg/logging"
)

// Handler handles HTTP requests for appointments
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new scheduler handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// BookAppointment handles POST /api/appointments requests
func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode booking request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Book(r.Context(), &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appt)
}

func (h *Handler) writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidClient),
		errors.Is(err, ErrInvalidSlot),
		errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrMissingPrice),
		errors.Is(err, catalog.ErrPackageNotFound):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPackageExhausted), errors.Is(err, ErrSlotTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error("booking failed", "error", err)
		http.Error(w, "booking failed", http.StatusInternalServerError)
	}
}

// GetAppointment handles GET /api/appointments/{appointmentID} requests
func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	if id == "" {
		http.Error(w, "missing appointment_id", http.StatusBadRequest)
		return
	}

	appt, err := h.service.GetAppointment(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load appointment", "error", err, "appointment_id", id)
		http.Error(w, "failed to load appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appt)
}

// ListAppointmentsResponse is the response for a day's appointments
type ListAppointmentsResponse struct {
	Appointments []*Appointment `json:"appointments"`
	Count        int            `json:"count"`
	Date         string         `json:"date"`
}

// ListAppointments handles GET /api/appointments?date=YYYY-MM-DD requests
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "missing date", http.StatusBadRequest)
		return
	}

	appointments, err := h.service.ListByDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, ErrInvalidSlot) {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to list appointments", "error", err, "date", date)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListAppointmentsResponse{
		Appointments: appointments,
		Count:        len(appointments),
		Date:         date,
	})
}

// UpdateStatusRequest is the body for a status mutation
type UpdateStatusRequest struct {
	Status AppointmentStatus `json:"status"`
}

// UpdateStatus handles PATCH /api/appointments/{appointmentID}/status requests
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	if id == "" {
		http.Error(w, "missing appointment_id", http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrAppointmentNotFound):
			http.Error(w, "appointment not found", http.StatusNotFound)
		default:
			h.logger.Error("failed to update status", "error", err, "appointment_id", id)
			http.Error(w, "failed to update status", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PackageStatus handles GET /api/clients/{clientID}/package requests
func (h *Handler) PackageStatus(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if clientID == "" {
		http.Error(w, "missing client_id", http.StatusBadRequest)
		return
	}

	status, err := h.service.PackageStatus(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, ErrInvalidClient) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load package status", "error", err, "client_id", clientID)
		http.Error(w, "failed to load package status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// ListSlotsResponse is the response for the bookable slot list
type ListSlotsResponse struct {
	Slots []string `json:"slots"`
	Count int      `json:"count"`
}

// ListSlots handles GET /api/slots requests
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	daily := slots.Daily()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListSlotsResponse{Slots: daily, Count: len(daily)})
}
