package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "REDIS_URL", "FLEET_VEHICLES", "SOLVER_MAX_DURATION", "MAX_PLAN_POINTS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "data/app.db", cfg.DSN())
	assert.Equal(t, 3, cfg.FleetVehicles)
	assert.Equal(t, 2*time.Second, cfg.SolverMaxDuration)
	assert.Equal(t, 2000, cfg.MaxPlanPoints)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DATABASE_URL", "postgres://localhost/outreach")
	t.Setenv("FLEET_CAPACITY", "75")
	t.Setenv("SOLVER_MAX_DURATION", "500ms")
	t.Setenv("DEPOT_LAT", "12.97")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/outreach", cfg.DSN())
	assert.Equal(t, 75, cfg.FleetCapacity)
	assert.Equal(t, 500*time.Millisecond, cfg.SolverMaxDuration)
	assert.InDelta(t, 12.97, cfg.DepotLat, 1e-9)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("FLEET_VEHICLES", "three")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FLEET_VEHICLES")

	t.Setenv("FLEET_VEHICLES", "")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DATABASE_URL", "")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestGetFallsBackOnBlank(t *testing.T) {
	t.Setenv("SOME_KEY", "   ")
	assert.Equal(t, "fallback", Get("SOME_KEY", "fallback"))
}
