package domain

import "fmt"

// A capacity-limited vehicle. Routes assigned to it must not carry
// more demand than Capacity.
type Vehicle struct {
	ID       string
	Capacity int
}

// NewFleet builds count identical vehicles named V1..Vn in fleet order.
func NewFleet(count int, capacity int) []Vehicle {
	fleet := make([]Vehicle, 0, max(count, 0))
	for i := range count {
		fleet = append(fleet, Vehicle{ID: fmt.Sprintf("V%d", i+1), Capacity: capacity})
	}
	return fleet
}

// Fits reports whether load more units fit on top of current.
func (v Vehicle) Fits(current, load int) bool {
	return current+load <= v.Capacity
}
