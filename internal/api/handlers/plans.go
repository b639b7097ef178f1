package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"outreach-route-service/internal/api/dto"
	"outreach-route-service/internal/domain"
	"outreach-route-service/internal/optimizer"
	"outreach-route-service/internal/ports"
	"outreach-route-service/internal/services"
)

const maxPlanBodyBytes = 1 << 20

// PlanDefaults fill in whatever a plan request leaves out.
type PlanDefaults struct {
	Depot     domain.Point
	Fleet     optimizer.FleetConfig
	Algorithm string
	Budget    optimizer.Budget
	Workers   int
	// Upper bound on inline points per request. Zero means no limit.
	MaxPoints int
}

type PlanHandler struct {
	Repo     ports.DemandPointRepository
	Store    ports.PlanStore
	Defaults PlanDefaults
}

// Create solves a routing request and returns the stored plan.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlanBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq, msg := h.toServiceRequest(req)
	if msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	plan, err := services.PlanRoutes(r.Context(), svcReq, h.Repo, h.Store)
	if errors.Is(err, optimizer.ErrInvalidInput) || errors.Is(err, optimizer.ErrInvalidConfig) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("plan routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.FromPlan(plan))
}

// Get returns a stored plan by id.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	plan, err := services.GetPlan(r.Context(), r.PathValue("id"), h.Store)
	if errors.Is(err, ports.ErrPlanNotFound) {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		log.Printf("get plan failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromPlan(plan))
}

// toServiceRequest applies defaults. A non-empty message means the request is
// rejected before solving.
func (h *PlanHandler) toServiceRequest(req dto.PlanRequest) (services.PlanRoutesRequest, string) {
	d := h.Defaults
	out := services.PlanRoutesRequest{
		Depot:      d.Depot,
		Priorities: req.Priorities,
		Fleet:      d.Fleet,
		Algorithm:  d.Algorithm,
		Budget:     d.Budget,
		Workers:    d.Workers,
	}

	if req.Depot != nil {
		out.Depot = domain.Point{
			ID:       req.Depot.ID,
			Name:     req.Depot.Name,
			Location: domain.Coordinates{Lat: req.Depot.Lat, Lon: req.Depot.Lon},
		}
	}

	if req.Points != nil {
		if d.MaxPoints > 0 && len(req.Points) > d.MaxPoints {
			return out, fmt.Sprintf("too many points: %d (max %d)", len(req.Points), d.MaxPoints)
		}
		out.Points = make([]domain.DemandPoint, 0, len(req.Points))
		for _, p := range req.Points {
			name := p.Name
			if name == "" {
				name = p.PointID
			}
			out.Points = append(out.Points, domain.DemandPoint{
				Point: domain.Point{
					ID:       p.PointID,
					Name:     name,
					Location: domain.Coordinates{Lat: p.Lat, Lon: p.Lon},
				},
				Demand:   p.Demand,
				Priority: p.Priority,
			})
		}
	}

	if req.VehicleCount != nil {
		out.Fleet.VehicleCount = *req.VehicleCount
	}
	if req.VehicleCapacity != nil {
		out.Fleet.VehicleCapacity = *req.VehicleCapacity
	}
	if req.Algorithm != "" {
		out.Algorithm = req.Algorithm
	}

	if req.MaxIterations != nil {
		if *req.MaxIterations < 0 {
			return out, "max_iterations must not be negative"
		}
		out.Budget.MaxIterations = *req.MaxIterations
	}
	if req.MaxDurationMS != nil {
		if *req.MaxDurationMS < 0 {
			return out, "max_duration_ms must not be negative"
		}
		out.Budget.MaxDuration = time.Duration(*req.MaxDurationMS) * time.Millisecond
	}

	return out, ""
}
