package optimizer

import (
	"context"
	"slices"

	"outreach-route-service/internal/domain"
)

// NearestNeighbor builds routes one vehicle at a time in fleet order. Each
// step appends the closest unassigned point that still fits, breaking ties by
// lowest point index, and closes the route when nothing fits.
//
// The result is feasible but not distance-optimized.
type NearestNeighbor struct{}

func (NearestNeighbor) Name() string { return "nearest" }

func (NearestNeighbor) BuildInitial(ctx context.Context, inst *Instance) (*Solution, error) {
	sol := NewSolution(inst)
	n := inst.Len()
	assigned := make([]bool, n)
	assigned[0] = true

	// Points no single vehicle can carry never consume a construction attempt.
	remaining := 0
	maxCap := inst.MaxCapacity()
	for i := 1; i < n; i++ {
		if inst.Demand(i) > maxCap {
			assigned[i] = true
			sol.Unserved = append(sol.Unserved, Unassigned{Index: i, Reason: domain.ReasonExceedsCapacity})
			continue
		}
		remaining++
	}

	for v, vehicle := range inst.Vehicles {
		if remaining == 0 {
			break
		}
		if expired(ctx) {
			sol.TimedOut = true
			break
		}

		r := sol.Routes[v]
		load := 0
		last := 0
		for !expired(ctx) {
			best := -1
			var bestDist int64
			for i := 1; i < n; i++ {
				if assigned[i] || !vehicle.Fits(load, inst.Demand(i)) {
					continue
				}
				// Ascending scan with strict comparison keeps the lowest index on ties.
				if d := inst.Dist.At(last, i); best < 0 || d < bestDist {
					best = i
					bestDist = d
				}
			}
			if best < 0 {
				break
			}

			r.insert(len(r.Stops)-1, best)
			assigned[best] = true
			load += inst.Demand(best)
			last = best
			remaining--
		}
		r.recompute(inst)

		if remaining > 0 && expired(ctx) {
			sol.TimedOut = true
			break
		}
	}

	reason := domain.ReasonFleetExhausted
	if sol.TimedOut {
		reason = domain.ReasonBudgetExhausted
	}
	for i := 1; i < n; i++ {
		if !assigned[i] {
			sol.Unserved = append(sol.Unserved, Unassigned{Index: i, Reason: reason})
		}
	}
	slices.SortFunc(sol.Unserved, func(a, b Unassigned) int { return a.Index - b.Index })

	return sol, nil
}
