// Package problemfile reads routing problems from YAML documents.
package problemfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"outreach-route-service/internal/domain"
	"outreach-route-service/internal/optimizer"

	"gopkg.in/yaml.v3"
)

// Problem is the YAML document layout:
//
//	depot: {id: depot, name: Depot, lat: 13.2, lon: 77.5}
//	fleet: {vehicles: 3, capacity: 200}
//	algorithm: savings
//	budget: {max_iterations: 1000, max_duration: 2s}
//	points:
//	  - {id: v1, name: Village 1, lat: 13.1, lon: 77.6, demand: 40, priority: High}
type Problem struct {
	Depot     Location `yaml:"depot"`
	Fleet     Fleet    `yaml:"fleet"`
	Algorithm string   `yaml:"algorithm"`
	Budget    Budget   `yaml:"budget"`
	Points    []Point  `yaml:"points"`
}

type Location struct {
	ID   string  `yaml:"id"`
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

type Fleet struct {
	Vehicles int `yaml:"vehicles"`
	Capacity int `yaml:"capacity"`
}

type Budget struct {
	MaxIterations int           `yaml:"max_iterations"`
	MaxDuration   time.Duration `yaml:"max_duration"`
}

type Point struct {
	Location `yaml:",inline"`
	Demand   int    `yaml:"demand"`
	Priority string `yaml:"priority"`
}

// Load reads and decodes the problem file at path.
func Load(path string) (Problem, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Problem{}, fmt.Errorf("load problem: read %q: %w", path, err)
	}
	p, err := Decode(bytes.NewReader(b))
	if err != nil {
		return Problem{}, fmt.Errorf("load problem %q: %w", path, err)
	}
	return p, nil
}

// Decode parses a single YAML problem document. Unknown keys are rejected.
func Decode(r io.Reader) (Problem, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Problem
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return Problem{}, errors.New("decode problem: empty document")
		}
		return Problem{}, fmt.Errorf("decode problem: %w", err)
	}
	return p, nil
}

// Input converts the problem into solver input.
func (p Problem) Input() optimizer.Input {
	in := optimizer.Input{
		Depot: domain.Point{
			ID:       p.Depot.ID,
			Name:     p.Depot.Name,
			Location: domain.Coordinates{Lat: p.Depot.Lat, Lon: p.Depot.Lon},
		},
		Points: make([]domain.DemandPoint, 0, len(p.Points)),
		Fleet: optimizer.FleetConfig{
			VehicleCount:    p.Fleet.Vehicles,
			VehicleCapacity: p.Fleet.Capacity,
		},
	}
	for _, pt := range p.Points {
		name := pt.Name
		if name == "" {
			name = pt.ID
		}
		in.Points = append(in.Points, domain.DemandPoint{
			Point: domain.Point{
				ID:       pt.ID,
				Name:     name,
				Location: domain.Coordinates{Lat: pt.Lat, Lon: pt.Lon},
			},
			Demand:   pt.Demand,
			Priority: pt.Priority,
		})
	}
	return in
}

// SolverBudget returns the solve budget declared by the problem.
func (p Problem) SolverBudget() optimizer.Budget {
	return optimizer.Budget{
		MaxIterations: p.Budget.MaxIterations,
		MaxDuration:   p.Budget.MaxDuration,
	}
}
