package planstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"outreach-route-service/internal/domain"
	"outreach-route-service/internal/platform/obs"
	"outreach-route-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "plan:"

// Redis stores plans as JSON strings under plan:<id> with a TTL.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis connects to the server at url (redis://...) and verifies it
// answers PING.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis plan store: parse url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis plan store: ping: %w", err)
	}

	return &Redis{rdb: rdb, ttl: ttl}, nil
}

func (s *Redis) SavePlan(ctx context.Context, plan domain.Plan) (err error) {
	defer obs.Time(ctx, "planstore.redis.SavePlan")(&err)

	if plan.ID == "" {
		return errors.New("save plan: id must not be empty")
	}

	b, err := encodePlan(plan)
	if err != nil {
		return err
	}

	// Zero TTL means no expiry in go-redis.
	ttl := max(s.ttl, 0)
	if err := s.rdb.Set(ctx, keyPrefix+plan.ID, b, ttl).Err(); err != nil {
		return fmt.Errorf("save plan %s: %w", plan.ID, err)
	}
	return nil
}

func (s *Redis) GetPlan(ctx context.Context, id string) (_ domain.Plan, err error) {
	defer obs.Time(ctx, "planstore.redis.GetPlan")(&err)

	b, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Plan{}, ports.ErrPlanNotFound
	}
	if err != nil {
		return domain.Plan{}, fmt.Errorf("get plan %s: %w", id, err)
	}

	return decodePlan(id, b)
}

func (s *Redis) Close() error { return s.rdb.Close() }
