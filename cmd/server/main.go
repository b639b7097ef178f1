package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"outreach-route-service/internal/adapters/planstore"
	"outreach-route-service/internal/adapters/repositories"
	"outreach-route-service/internal/api"
	"outreach-route-service/internal/api/handlers"
	"outreach-route-service/internal/config"
	"outreach-route-service/internal/domain"
	"outreach-route-service/internal/optimizer"
	"outreach-route-service/internal/platform/db"
	"outreach-route-service/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	dialect, err := repositories.DialectFor(cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}

	// Local SQLite runs get their schema and demo data on startup; Postgres is
	// prepared with cmd/dbtool.
	if cfg.DBDriver == db.DriverSQLite {
		if err := initAndSeed(conn, dialect, cfg.SeedPath); err != nil {
			log.Fatal(err)
		}
	}

	store, err := openPlanStore(cfg, conn, dialect)
	if err != nil {
		log.Fatal(err)
	}

	var limiter *rate.Limiter
	if cfg.RateRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateRPS), max(cfg.RateBurst, 1))
	}

	defaults := handlers.PlanDefaults{
		Depot: domain.Point{
			ID:       optimizer.DefaultDepotID,
			Name:     cfg.DepotName,
			Location: domain.Coordinates{Lat: cfg.DepotLat, Lon: cfg.DepotLon},
		},
		Fleet: optimizer.FleetConfig{
			VehicleCount:    cfg.FleetVehicles,
			VehicleCapacity: cfg.FleetCapacity,
		},
		Algorithm: cfg.SolverAlgorithm,
		Budget: optimizer.Budget{
			MaxIterations: cfg.SolverMaxIterations,
			MaxDuration:   cfg.SolverMaxDuration,
		},
		Workers:   cfg.SolverWorkers,
		MaxPoints: cfg.MaxPlanPoints,
	}

	repo := repositories.NewSQLDemandPointRepository(conn)
	router := api.NewRouter(conn, repo, store, defaults, limiter)

	log.Printf("Server listening addr=:%s driver=%s", cfg.Port, cfg.DBDriver)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Solves are bounded by SOLVER_MAX_DURATION; leave room for encoding.
		WriteTimeout: cfg.SolverMaxDuration + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openPlanStore prefers Redis when REDIS_URL is set and falls back to the
// plans table otherwise.
func openPlanStore(cfg config.Config, conn *sql.DB, dialect repositories.Dialect) (ports.PlanStore, error) {
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store, err := planstore.NewRedis(ctx, cfg.RedisURL, cfg.PlanTTL)
		if err != nil {
			return nil, fmt.Errorf("open plan store: %w", err)
		}
		log.Printf("plan store=redis ttl=%s", cfg.PlanTTL)
		return store, nil
	}

	store := planstore.NewSQL(conn, dialect, cfg.PlanTTL)
	if n, err := store.Purge(context.Background()); err != nil {
		log.Printf("plan store: purge expired plans: %v", err)
	} else if n > 0 {
		log.Printf("plan store: purged %d expired plans", n)
	}
	log.Printf("plan store=sql ttl=%s", cfg.PlanTTL)
	return store, nil
}

func initAndSeed(conn *sql.DB, dialect repositories.Dialect, seedPath string) error {
	ctx := context.Background()
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	n, err := repositories.SeedFromJSON(ctx, conn, dialect, seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Printf("seeded demand points count=%d path=%s", n, seedPath)

	return nil
}
