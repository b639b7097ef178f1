package handlers

import (
	"log"
	"net/http"

	"outreach-route-service/internal/api/dto"
	"outreach-route-service/internal/ports"
)

// PointHandler exposes read-only demand point retrieval.
type PointHandler struct {
	Repo ports.DemandPointRepository
}

func (h *PointHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	points, err := h.Repo.ListDemandPoints(r.Context())
	if err != nil {
		log.Printf("list demand points failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromPoints(points))
}
