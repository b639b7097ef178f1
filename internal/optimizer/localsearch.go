package optimizer

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// LocalSearch improves a feasible solution with intra-route 2-opt and
// inter-route relocation until no strictly improving move remains or the
// budget runs out.
//
// Moves are scanned in ascending route and position order and only strictly
// improving moves are applied, so for a fixed input and iteration budget the
// result does not depend on Workers.
type LocalSearch struct {
	// Upper bound on concurrent 2-opt sweeps. Zero uses GOMAXPROCS.
	Workers int
}

func (ls LocalSearch) Name() string { return "local-search" }

// Improve returns an improved copy of sol; sol itself is left untouched.
func (ls LocalSearch) Improve(ctx context.Context, inst *Instance, sol *Solution, budget Budget) (*Solution, error) {
	ctx, cancel := budget.bind(ctx)
	defer cancel()

	cur := sol.Clone()
	dirty := make([]bool, len(cur.Routes))
	for i := range dirty {
		dirty[i] = true
	}

	for {
		if err := ls.twoOptAll(ctx, inst, cur, dirty); err != nil {
			return nil, err
		}
		if expired(ctx) {
			cur.TimedOut = true
			break
		}

		mv, ok := bestRelocate(inst, cur)
		if !ok {
			break
		}
		if !budget.iterationsLeft(cur.Iterations) {
			cur.TimedOut = true
			break
		}
		mv.apply(inst, cur)
		dirty[mv.from] = true
		dirty[mv.to] = true
		cur.Iterations++
	}

	return cur, nil
}

// twoOptAll sweeps every dirty route concurrently. Each goroutine owns its
// route exclusively for the duration of the sweep.
func (ls LocalSearch) twoOptAll(ctx context.Context, inst *Instance, sol *Solution, dirty []bool) error {
	workers := ls.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, r := range sol.Routes {
		if !dirty[i] {
			continue
		}
		dirty[i] = false
		g.Go(func() error {
			twoOpt(ctx, inst, r)
			return nil
		})
	}
	return g.Wait()
}

// twoOpt applies the best strictly improving segment reversal per sweep until
// none is left or ctx expires.
//
// Reversing s[i..k] replaces edges (a,b) and (c,e) with (a,c) and (b,e) where
// a=s[i-1], b=s[i], c=s[k], e=s[k+1]; the matrix is symmetric, so the reversed
// interior keeps its length.
func twoOpt(ctx context.Context, inst *Instance, r *Route) {
	d := inst.Dist
	for {
		if expired(ctx) {
			return
		}

		s := r.Stops
		n := len(s)
		var bestDelta int64
		bi, bk := -1, -1
		for i := 1; i < n-2; i++ {
			a, b := s[i-1], s[i]
			for k := i + 1; k < n-1; k++ {
				c, e := s[k], s[k+1]
				delta := d.At(a, c) + d.At(b, e) - d.At(a, b) - d.At(c, e)
				if delta < bestDelta {
					bestDelta = delta
					bi, bk = i, k
				}
			}
		}
		if bi < 0 {
			return
		}

		slices.Reverse(s[bi : bk+1])
		r.recompute(inst)
	}
}

type relocateMove struct {
	from, pos int
	to, at    int
	gain      int64
}

// bestRelocate finds the single-stop transfer between two vehicle slots with
// the largest distance saving. Idle vehicles are valid targets. The first move
// found wins ties.
func bestRelocate(inst *Instance, sol *Solution) (relocateMove, bool) {
	d := inst.Dist
	best := relocateMove{}

	for ri, r := range sol.Routes {
		for p := 1; p < len(r.Stops)-1; p++ {
			prev, x, next := r.Stops[p-1], r.Stops[p], r.Stops[p+1]
			saved := d.At(prev, x) + d.At(x, next) - d.At(prev, next)
			demand := inst.Demand(x)

			for ti, t := range sol.Routes {
				if ti == ri || !inst.Vehicles[t.Vehicle].Fits(t.Load, demand) {
					continue
				}
				for q := 1; q < len(t.Stops); q++ {
					a, b := t.Stops[q-1], t.Stops[q]
					added := d.At(a, x) + d.At(x, b) - d.At(a, b)
					if gain := saved - added; gain > best.gain {
						best = relocateMove{from: ri, pos: p, to: ti, at: q, gain: gain}
					}
				}
			}
		}
	}

	return best, best.gain > 0
}

func (m relocateMove) apply(inst *Instance, sol *Solution) {
	src, dst := sol.Routes[m.from], sol.Routes[m.to]
	p := src.remove(m.pos)
	dst.insert(m.at, p)
	src.recompute(inst)
	dst.recompute(inst)
}
