// Command solve reads a YAML routing problem and prints the plan as JSON.
//
//	solve -f problem.yaml [-algorithm savings] [-workers 4]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"outreach-route-service/internal/adapters/problemfile"
	"outreach-route-service/internal/api/dto"
	"outreach-route-service/internal/optimizer"
)

func main() {
	path := flag.String("f", "", "path to the YAML problem file")
	algorithm := flag.String("algorithm", "", "construction heuristic (nearest, savings); overrides the file")
	workers := flag.Int("workers", 0, "goroutine limit for parallel stages (0 = GOMAXPROCS)")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	problem, err := problemfile.Load(*path)
	if err != nil {
		log.Fatal(err)
	}

	name := problem.Algorithm
	if *algorithm != "" {
		name = *algorithm
	}

	solver, err := optimizer.NewSolver(name, *workers)
	if err != nil {
		log.Fatal(err)
	}

	plan, err := solver.Solve(context.Background(), problem.Input(), problem.SolverBudget())
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.FromPlan(plan)); err != nil {
		log.Fatal(err)
	}
}
