package optimizer

import "outreach-route-service/internal/domain"

// Extract converts internal solver state into the external plan contract.
// Vehicles without stops are omitted. It does no optimization and cannot fail.
func Extract(inst *Instance, sol *Solution) domain.Plan {
	plan := domain.Plan{
		Routes: []domain.PlanRoute{},
		Summary: domain.PlanSummary{
			Unserved: []domain.UnservedPoint{},
		},
	}
	if inst.Empty() {
		plan.Status = domain.StatusEmpty
		return plan
	}

	for _, r := range sol.Routes {
		if r.Visits() == 0 {
			continue
		}
		vehicle := inst.Vehicles[r.Vehicle]
		pr := domain.PlanRoute{
			VehicleID:           vehicle.ID,
			Capacity:            vehicle.Capacity,
			Stops:               make([]domain.PlanStop, 0, len(r.Stops)),
			Load:                r.Load,
			TotalDistanceMeters: r.Distance,
		}

		load := 0
		var dist int64
		for i, p := range r.Stops {
			if i > 0 {
				dist += inst.Dist.At(r.Stops[i-1], p)
			}
			pt := inst.Points[p]
			load += pt.Demand
			pr.Stops = append(pr.Stops, domain.PlanStop{
				PointID:                  pt.ID,
				Name:                     pt.Name,
				Location:                 pt.Location,
				Demand:                   pt.Demand,
				Priority:                 pt.Priority,
				CumulativeLoad:           load,
				CumulativeDistanceMeters: dist,
			})
		}

		plan.Routes = append(plan.Routes, pr)
		plan.Summary.TotalDistanceMeters += r.Distance
		plan.Summary.ServedDemand += r.Load
	}
	plan.Summary.VehiclesUsed = len(plan.Routes)

	maxCap := inst.MaxCapacity()
	shortOnCapacity := false
	for _, u := range sol.Unserved {
		if u.Reason != domain.ReasonBudgetExhausted {
			shortOnCapacity = true
		}
		pt := inst.Points[u.Index]
		shortfall := pt.Demand
		if u.Reason == domain.ReasonExceedsCapacity {
			shortfall = pt.Demand - maxCap
		}
		plan.Summary.Unserved = append(plan.Summary.Unserved, domain.UnservedPoint{
			PointID:   pt.ID,
			Name:      pt.Name,
			Demand:    pt.Demand,
			Shortfall: shortfall,
			Reason:    u.Reason,
		})
	}

	plan.Summary.Iterations = sol.Iterations
	plan.Summary.TimedOut = sol.TimedOut

	// Points left behind only because the budget ran out are a timeout, not a
	// capacity shortfall.
	switch {
	case shortOnCapacity:
		plan.Status = domain.StatusInfeasible
	case sol.TimedOut || len(sol.Unserved) > 0:
		plan.Status = domain.StatusTimedOut
	default:
		plan.Status = domain.StatusOptimal
	}
	return plan
}
