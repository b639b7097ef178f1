package dto

type PointResponse struct {
	PointID  string  `json:"point_id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Demand   int     `json:"demand"`
	Priority string  `json:"priority,omitempty"`
}

type ListPointsResponse struct {
	Points []PointResponse `json:"points"`
}
