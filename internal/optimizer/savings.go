package optimizer

import (
	"cmp"
	"context"
	"slices"

	"outreach-route-service/internal/domain"
)

// Savings is the Clarke-Wright savings heuristic. Every servable point starts
// on its own depot round trip; round trips are then merged end to end in
// order of decreasing saving d(0,i) + d(0,j) - d(i,j) while the merged load
// fits the largest vehicle. Merged chains are handed to vehicles by load,
// largest first.
type Savings struct{}

func (Savings) Name() string { return "savings" }

type saving struct {
	i, j  int
	value int64
}

type chain struct {
	stops []int
	load  int
}

func (Savings) BuildInitial(ctx context.Context, inst *Instance) (*Solution, error) {
	sol := NewSolution(inst)
	n := inst.Len()
	maxCap := inst.MaxCapacity()

	chains := make(map[int]*chain, n)
	chainOf := make([]int, n)
	candidates := make([]int, 0, n)
	for i := 1; i < n; i++ {
		if inst.Demand(i) > maxCap {
			sol.Unserved = append(sol.Unserved, Unassigned{Index: i, Reason: domain.ReasonExceedsCapacity})
			continue
		}
		chains[i] = &chain{stops: []int{i}, load: inst.Demand(i)}
		chainOf[i] = i
		candidates = append(candidates, i)
	}

	d := inst.Dist
	savings := make([]saving, 0, len(candidates)*(len(candidates)-1)/2)
	for a, i := range candidates {
		for _, j := range candidates[a+1:] {
			savings = append(savings, saving{i: i, j: j, value: d.At(0, i) + d.At(0, j) - d.At(i, j)})
		}
	}
	slices.SortFunc(savings, func(x, y saving) int {
		if c := cmp.Compare(y.value, x.value); c != 0 {
			return c
		}
		if c := cmp.Compare(x.i, y.i); c != 0 {
			return c
		}
		return cmp.Compare(x.j, y.j)
	})

	for _, s := range savings {
		if expired(ctx) {
			sol.TimedOut = true
			break
		}
		ci, cj := chainOf[s.i], chainOf[s.j]
		if ci == cj {
			continue
		}
		a, b := chains[ci], chains[cj]
		if a.load+b.load > maxCap {
			continue
		}
		if !isEndpoint(a.stops, s.i) || !isEndpoint(b.stops, s.j) {
			continue
		}
		// Orient so the merge reads ... i | j ...
		if a.stops[len(a.stops)-1] != s.i {
			slices.Reverse(a.stops)
		}
		if b.stops[0] != s.j {
			slices.Reverse(b.stops)
		}
		a.stops = append(a.stops, b.stops...)
		a.load += b.load
		for _, p := range b.stops {
			chainOf[p] = ci
		}
		delete(chains, cj)
	}

	// Keys are the first point of the original round trip, so sorting them
	// gives a stable order before the load sort.
	ids := make([]int, 0, len(chains))
	for id := range chains {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	slices.SortStableFunc(ids, func(x, y int) int { return cmp.Compare(chains[y].load, chains[x].load) })

	vehicles := make([]int, len(inst.Vehicles))
	for v := range vehicles {
		vehicles[v] = v
	}
	slices.SortStableFunc(vehicles, func(x, y int) int {
		return cmp.Compare(inst.Vehicles[y].Capacity, inst.Vehicles[x].Capacity)
	})

	next := 0
	for _, id := range ids {
		c := chains[id]
		if next < len(vehicles) && c.load <= inst.Vehicles[vehicles[next]].Capacity {
			r := sol.Routes[vehicles[next]]
			r.Stops = append([]int{0}, append(c.stops, 0)...)
			r.recompute(inst)
			next++
			continue
		}
		for _, p := range c.stops {
			sol.Unserved = append(sol.Unserved, Unassigned{Index: p, Reason: domain.ReasonFleetExhausted})
		}
	}
	slices.SortFunc(sol.Unserved, func(a, b Unassigned) int { return a.Index - b.Index })

	return sol, nil
}

func isEndpoint(stops []int, p int) bool {
	return stops[0] == p || stops[len(stops)-1] == p
}
