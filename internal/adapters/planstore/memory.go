package planstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"outreach-route-service/internal/domain"
	"outreach-route-service/internal/ports"
)

type memoryEntry struct {
	plan    domain.Plan
	expires time.Time
}

// Memory is an in-process PlanStore. Plans are lost on restart.
type Memory struct {
	mu    sync.RWMutex
	ttl   time.Duration
	plans map[string]memoryEntry

	now func() time.Time
}

// NewMemory returns an empty store. A non-positive ttl keeps plans forever.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, plans: map[string]memoryEntry{}, now: time.Now}
}

func (m *Memory) SavePlan(_ context.Context, plan domain.Plan) error {
	if plan.ID == "" {
		return errors.New("save plan: id must not be empty")
	}

	e := memoryEntry{plan: plan}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.ID] = e
	return nil
}

func (m *Memory) GetPlan(_ context.Context, id string) (domain.Plan, error) {
	m.mu.RLock()
	e, ok := m.plans[id]
	m.mu.RUnlock()

	if !ok || (!e.expires.IsZero() && !m.now().Before(e.expires)) {
		return domain.Plan{}, ports.ErrPlanNotFound
	}
	return e.plan, nil
}
