package clients

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aqustica12/diyetup-backend/pkg/logging"
)

// Handler handles HTTP requests for the client directory
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new clients handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// CreateClient handles POST /api/clients requests
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidName) || errors.Is(err, ErrMissingContact) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create client", "error", err)
		http.Error(w, "failed to create client", http.StatusInternalServerError)
		return
	}

	h.logger.Info("client created", "id", client.ID, "name", client.FullName)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(client)
}

// GetClient handles GET /api/clients/{clientID} requests
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if clientID == "" {
		http.Error(w, "missing client_id", http.StatusBadRequest)
		return
	}

	client, err := h.repo.GetByID(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load client", "error", err, "client_id", clientID)
		http.Error(w, "failed to load client", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(client)
}

// ListClientsResponse is the response for listing clients
type ListClientsResponse struct {
	Clients []*Client `json:"clients"`
	Count   int       `json:"count"`
}

// ListClients handles GET /api/clients requests
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list clients", "error", err)
		http.Error(w, "failed to list clients", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListClientsResponse{
		Clients: clients,
		Count:   len(clients),
	})
}
