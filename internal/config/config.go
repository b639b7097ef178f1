package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the service configuration assembled from the environment.
// Call godotenv.Load before Load to pick up a local .env file.
type Config struct {
	Port string

	DBDriver    string
	DBPath      string
	DatabaseURL string
	SeedPath    string

	RedisURL string
	PlanTTL  time.Duration

	DepotName string
	DepotLat  float64
	DepotLon  float64

	FleetVehicles int
	FleetCapacity int

	SolverAlgorithm     string
	SolverMaxIterations int
	SolverMaxDuration   time.Duration
	SolverWorkers       int
	MaxPlanPoints       int

	RateRPS   float64
	RateBurst int
}

// Get returns the value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config %s: parse int %q: %w", key, v, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config %s: parse float %q: %w", key, v, err)
	}
	return f, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config %s: parse duration %q: %w", key, v, err)
	}
	return d, nil
}

// Load reads the service configuration from the environment.
// Defaults target a local run against a SQLite file with no Redis.
func Load() (Config, error) {
	cfg := Config{
		Port:            Get("PORT", "8080"),
		DBDriver:        Get("DB_DRIVER", "sqlite"),
		DBPath:          Get("DB_PATH", "data/app.db"),
		DatabaseURL:     Get("DATABASE_URL", ""),
		SeedPath:        Get("SEED_PATH", "data/seeds/demand_points.json"),
		RedisURL:        Get("REDIS_URL", ""),
		DepotName:       Get("DEPOT_NAME", "DEPOT"),
		SolverAlgorithm: Get("SOLVER_ALGORITHM", "nearest"),
	}

	var err error
	if cfg.PlanTTL, err = GetDuration("PLAN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.DepotLat, err = GetFloat("DEPOT_LAT", 13.2); err != nil {
		return Config{}, err
	}
	if cfg.DepotLon, err = GetFloat("DEPOT_LON", 77.5); err != nil {
		return Config{}, err
	}
	if cfg.FleetVehicles, err = GetInt("FLEET_VEHICLES", 3); err != nil {
		return Config{}, err
	}
	if cfg.FleetCapacity, err = GetInt("FLEET_CAPACITY", 200); err != nil {
		return Config{}, err
	}
	if cfg.SolverMaxIterations, err = GetInt("SOLVER_MAX_ITERATIONS", 1000); err != nil {
		return Config{}, err
	}
	if cfg.SolverMaxDuration, err = GetDuration("SOLVER_MAX_DURATION", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SolverWorkers, err = GetInt("SOLVER_WORKERS", 0); err != nil {
		return Config{}, err
	}
	if cfg.MaxPlanPoints, err = GetInt("MAX_PLAN_POINTS", 2000); err != nil {
		return Config{}, err
	}
	if cfg.RateRPS, err = GetFloat("RATE_RPS", 5); err != nil {
		return Config{}, err
	}
	if cfg.RateBurst, err = GetInt("RATE_BURST", 10); err != nil {
		return Config{}, err
	}

	// The commands import exactly these two database/sql drivers.
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "pgx" {
		return Config{}, fmt.Errorf("config DB_DRIVER: unsupported driver %q (allowed: sqlite, pgx)", cfg.DBDriver)
	}
	if cfg.DBDriver == "pgx" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("config DATABASE_URL: required when DB_DRIVER=pgx")
	}

	return cfg, nil
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "pgx" {
		return c.DatabaseURL
	}
	return c.DBPath
}
