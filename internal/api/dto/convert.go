package dto

import "outreach-route-service/internal/domain"

// FromPlan maps a domain plan onto its JSON representation.
func FromPlan(p domain.Plan) PlanResponse {
	res := PlanResponse{
		PlanID:    p.ID,
		CreatedAt: p.CreatedAt,
		Algorithm: p.Algorithm,
		Status:    string(p.Status),
		Routes:    make([]PlanRouteResponse, 0, len(p.Routes)),
		Summary: PlanSummaryResponse{
			TotalDistanceMeters: p.Summary.TotalDistanceMeters,
			VehiclesUsed:        p.Summary.VehiclesUsed,
			ServedDemand:        p.Summary.ServedDemand,
			Unserved:            make([]UnservedPointResponse, 0, len(p.Summary.Unserved)),
			Iterations:          p.Summary.Iterations,
			TimedOut:            p.Summary.TimedOut,
		},
	}

	for _, r := range p.Routes {
		stops := make([]PlanStopResponse, 0, len(r.Stops))
		for _, s := range r.Stops {
			stops = append(stops, PlanStopResponse{
				PointID:                  s.PointID,
				Name:                     s.Name,
				Lat:                      s.Location.Lat,
				Lon:                      s.Location.Lon,
				Demand:                   s.Demand,
				Priority:                 s.Priority,
				CumulativeLoad:           s.CumulativeLoad,
				CumulativeDistanceMeters: s.CumulativeDistanceMeters,
			})
		}
		res.Routes = append(res.Routes, PlanRouteResponse{
			VehicleID:           r.VehicleID,
			Capacity:            r.Capacity,
			Load:                r.Load,
			TotalDistanceMeters: r.TotalDistanceMeters,
			Stops:               stops,
		})
	}

	for _, u := range p.Summary.Unserved {
		res.Summary.Unserved = append(res.Summary.Unserved, UnservedPointResponse{
			PointID:   u.PointID,
			Name:      u.Name,
			Demand:    u.Demand,
			Shortfall: u.Shortfall,
			Reason:    string(u.Reason),
		})
	}

	return res
}

func FromPoints(points []domain.DemandPoint) ListPointsResponse {
	res := ListPointsResponse{Points: make([]PointResponse, 0, len(points))}
	for _, p := range points {
		res.Points = append(res.Points, PointResponse{
			PointID:  p.ID,
			Name:     p.Name,
			Lat:      p.Location.Lat,
			Lon:      p.Location.Lon,
			Demand:   p.Demand,
			Priority: p.Priority,
		})
	}
	return res
}
