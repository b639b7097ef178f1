package planstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"outreach-route-service/internal/adapters/repositories"
	"outreach-route-service/internal/domain"
	"outreach-route-service/internal/platform/obs"
	"outreach-route-service/internal/ports"
)

// SQL keeps plans in the plans table created by repositories.InitSchema.
// Expired rows are ignored on read and removed by Purge.
type SQL struct {
	DB      *sql.DB
	Dialect repositories.Dialect
	TTL     time.Duration

	now func() time.Time
}

func NewSQL(db *sql.DB, dialect repositories.Dialect, ttl time.Duration) *SQL {
	return &SQL{DB: db, Dialect: dialect, TTL: ttl, now: time.Now}
}

func (s *SQL) SavePlan(ctx context.Context, plan domain.Plan) (err error) {
	defer obs.Time(ctx, "planstore.sql.SavePlan")(&err)

	if s.DB == nil {
		return errors.New("sql plan store: db is nil")
	}
	if strings.TrimSpace(plan.ID) == "" {
		return errors.New("save plan: id must not be empty")
	}

	b, err := encodePlan(plan)
	if err != nil {
		return err
	}

	now := s.now()
	expires := int64(math.MaxInt64)
	if s.TTL > 0 {
		expires = now.Add(s.TTL).Unix()
	}

	q := fmt.Sprintf(`
	INSERT INTO plans (plan_id, created_at, expires_at, body)
	VALUES (%s)
	ON CONFLICT (plan_id) DO UPDATE
	SET created_at = EXCLUDED.created_at,
		expires_at = EXCLUDED.expires_at,
		body = EXCLUDED.body;
	`, s.Dialect.Placeholders(4))

	if _, err := s.DB.ExecContext(ctx, q, plan.ID, now.Unix(), expires, string(b)); err != nil {
		return fmt.Errorf("save plan %s: %w", plan.ID, err)
	}
	return nil
}

func (s *SQL) GetPlan(ctx context.Context, id string) (_ domain.Plan, err error) {
	defer obs.Time(ctx, "planstore.sql.GetPlan")(&err)

	if s.DB == nil {
		return domain.Plan{}, errors.New("sql plan store: db is nil")
	}

	q := fmt.Sprintf(`
	SELECT body
	FROM plans
	WHERE plan_id = %s
		AND expires_at > %s;
	`, s.Dialect.Placeholder(1), s.Dialect.Placeholder(2))

	var body string
	err = s.DB.QueryRowContext(ctx, q, id, s.now().Unix()).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Plan{}, ports.ErrPlanNotFound
	}
	if err != nil {
		return domain.Plan{}, fmt.Errorf("get plan %s: query plans table: %w", id, err)
	}

	return decodePlan(id, []byte(body))
}

// Purge deletes expired plans and returns how many were removed.
func (s *SQL) Purge(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("sql plan store: db is nil")
	}

	q := fmt.Sprintf(`DELETE FROM plans WHERE expires_at <= %s;`, s.Dialect.Placeholder(1))
	res, err := s.DB.ExecContext(ctx, q, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge plans: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge plans: rows affected: %w", err)
	}
	return n, nil
}
