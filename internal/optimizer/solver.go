package optimizer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"outreach-route-service/internal/domain"
	"outreach-route-service/internal/platform/obs"
)

const (
	AlgorithmNearest = "nearest"
	AlgorithmSavings = "savings"
)

// Constructor builds an initial feasible solution.
type Constructor interface {
	Name() string
	BuildInitial(ctx context.Context, inst *Instance) (*Solution, error)
}

// Improver refines a feasible solution within a budget. Implementations must
// not mutate sol and must return the best solution found, flagged TimedOut,
// when the budget runs out.
type Improver interface {
	Improve(ctx context.Context, inst *Instance, sol *Solution, budget Budget) (*Solution, error)
}

// Solver runs registry, distance model, construction, improvement and
// extraction for one request. It keeps no state between calls.
type Solver struct {
	Constructor Constructor
	Improver    Improver
	// Upper bound on goroutines used by the distance model. Zero uses GOMAXPROCS.
	Workers int
}

// NewSolver returns the default local search paired with the named
// construction heuristic. An empty name selects nearest neighbor.
func NewSolver(algorithm string, workers int) (*Solver, error) {
	var c Constructor
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", AlgorithmNearest:
		c = NearestNeighbor{}
	case AlgorithmSavings:
		c = Savings{}
	default:
		return nil, invalidConfig("unknown algorithm %q (allowed: %s, %s)", algorithm, AlgorithmNearest, AlgorithmSavings)
	}

	return &Solver{
		Constructor: c,
		Improver:    LocalSearch{Workers: workers},
		Workers:     workers,
	}, nil
}

// Solve produces a plan for in. Fatal validation problems are returned as
// errors wrapping ErrInvalidInput or ErrInvalidConfig; unservable points and
// budget exhaustion are reported through the plan status instead.
func (s *Solver) Solve(ctx context.Context, in Input, budget Budget) (_ domain.Plan, err error) {
	defer obs.Time(ctx, "optimizer.Solve")(&err)

	inst, err := NewInstance(in)
	if err != nil {
		return domain.Plan{}, err
	}
	if inst.Empty() {
		plan := Extract(inst, NewSolution(inst))
		plan.Algorithm = s.Constructor.Name()
		return plan, nil
	}

	inst.Dist, err = BuildDistanceMatrix(inst.Coordinates(), s.Workers)
	if err != nil {
		return domain.Plan{}, err
	}

	ctx, cancel := budget.bind(ctx)
	defer cancel()

	initial, err := s.Constructor.BuildInitial(ctx, inst)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("solve: construct %s: %w", s.Constructor.Name(), err)
	}
	if err := initial.Verify(inst); err != nil {
		return domain.Plan{}, fmt.Errorf("solve: construct %s: %w", s.Constructor.Name(), err)
	}

	improved, err := s.Improver.Improve(ctx, inst, initial, budget)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("solve: improve: %w", err)
	}
	if err := improved.Verify(inst); err != nil {
		return domain.Plan{}, fmt.Errorf("solve: improve: %w", err)
	}

	reqID, _ := ctx.Value(obs.RequestIDKey).(string)
	log.Printf(
		"req_id=%s op=optimizer.Solve algorithm=%s points=%d vehicles=%d initial_m=%d final_m=%d iterations=%d timed_out=%t",
		reqID, s.Constructor.Name(), inst.Len()-1, len(inst.Vehicles),
		initial.TotalDistance(), improved.TotalDistance(), improved.Iterations, improved.TimedOut,
	)

	plan := Extract(inst, improved)
	plan.Algorithm = s.Constructor.Name()
	return plan, nil
}
