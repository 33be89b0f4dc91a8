// handlers/meta_handler.go
package handlers

import (
	"net/http"

	"github.com/sgcarsight/backend/models"
)

// TimestampSource reads the per-dataset last-updated timestamps.
type TimestampSource interface {
	LastUpdated() ([]models.DatasetTimestamp, error)
}

// MetaHandler serves pipeline bookkeeping reads for the web frontend.
type MetaHandler struct {
	stamps TimestampSource
}

func NewMetaHandler(stamps TimestampSource) *MetaHandler {
	return &MetaHandler{stamps: stamps}
}

// LastUpdatedHandler handles GET /api/updated: the "data last refreshed"
// timestamps shown on the dashboards.
func (h *MetaHandler) LastUpdatedHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	stamps, err := h.stamps.LastUpdated()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to read dataset timestamps: "+err.Error())
		return
	}
	if stamps == nil {
		stamps = []models.DatasetTimestamp{}
	}
	respondWithJSON(w, http.StatusOK, stamps)
}
