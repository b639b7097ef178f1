package optimizer

import (
	"math"
	"runtime"

	"outreach-route-service/internal/domain"

	"golang.org/x/sync/errgroup"
)

const earthRadiusKm = 6371.0

// DistanceMatrix holds symmetric point-to-point travel costs in whole meters.
// Integer storage keeps move comparisons identical across runs and platforms.
// It is read-only once built.
type DistanceMatrix struct {
	n     int
	cells []int64
}

// Size returns the number of points covered by the matrix.
func (m *DistanceMatrix) Size() int { return m.n }

// At returns the distance in meters between points i and j.
func (m *DistanceMatrix) At(i, j int) int64 { return m.cells[i*m.n+j] }

// BuildDistanceMatrix computes great-circle distances between all pairs of
// coordinates. Index 0 is expected to be the depot.
//
// Rows are computed concurrently; each worker owns the upper-triangle cells of
// its row and their mirrors, so no two workers write the same cell.
func BuildDistanceMatrix(coords []domain.Coordinates, workers int) (*DistanceMatrix, error) {
	n := len(coords)
	if n < 1 {
		return nil, invalidInput("distance matrix needs at least one point")
	}
	for i, c := range coords {
		if !c.InRange() {
			return nil, invalidInput("point #%d has out-of-range coordinates lat=%v lon=%v", i, c.Lat, c.Lon)
		}
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	m := &DistanceMatrix{n: n, cells: make([]int64, n*n)}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range n {
		g.Go(func() error {
			for j := i + 1; j < n; j++ {
				d := haversineMeters(coords[i], coords[j])
				m.cells[i*n+j] = d
				m.cells[j*n+i] = d
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return m, nil
}

// haversineMeters returns the great-circle distance rounded to whole meters.
func haversineMeters(a, b domain.Coordinates) int64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sLat := math.Sin(dLat / 2)
	sLon := math.Sin(dLon / 2)
	h := sLat*sLat + math.Cos(lat1)*math.Cos(lat2)*sLon*sLon
	// Rounding error can push h a hair past 1 for antipodal points.
	h = math.Min(h, 1)

	km := 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
	return int64(math.Round(km * 1000))
}
