package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/aqustica12/diyetup-backend/pkg/logging"
)

// Handler handles HTTP requests for the package catalog
type Handler struct {
	source Source
	logger *logging.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(source Source, logger *logging.Logger) *Handler {
	return &Handler{source: source, logger: logger}
}

// ListPackagesResponse is the response for listing packages
type ListPackagesResponse struct {
	Packages []Package `json:"packages"`
	Count    int       `json:"count"`
}

// ListPackages handles GET /api/packages requests
func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.source.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list packages", "error", err)
		http.Error(w, "failed to list packages", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListPackagesResponse{
		Packages: packages,
		Count:    len(packages),
	})
}
