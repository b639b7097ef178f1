package domain

import "testing"

func TestNewFleet(t *testing.T) {
	fleet := NewFleet(3, 40)

	if len(fleet) != 3 {
		t.Fatalf("expected 3 vehicles, got %d", len(fleet))
	}
	for i, v := range fleet {
		want := []string{"V1", "V2", "V3"}[i]
		if v.ID != want {
			t.Errorf("vehicle %d id = %q, want %q", i, v.ID, want)
		}
		if v.Capacity != 40 {
			t.Errorf("vehicle %d capacity = %d, want 40", i, v.Capacity)
		}
	}

	if got := NewFleet(0, 10); len(got) != 0 {
		t.Fatalf("expected empty fleet, got %d vehicles", len(got))
	}
}

func TestVehicleFits(t *testing.T) {
	v := Vehicle{ID: "V1", Capacity: 20}

	if !v.Fits(10, 10) {
		t.Error("10+10 should fit capacity 20")
	}
	if v.Fits(15, 6) {
		t.Error("15+6 should not fit capacity 20")
	}
}

func TestCoordinatesInRange(t *testing.T) {
	cases := []struct {
		c    Coordinates
		want bool
	}{
		{Coordinates{Lat: 0, Lon: 0}, true},
		{Coordinates{Lat: 90, Lon: 180}, true},
		{Coordinates{Lat: -90, Lon: -180}, true},
		{Coordinates{Lat: 90.5, Lon: 0}, false},
		{Coordinates{Lat: 0, Lon: -181}, false},
	}
	for _, tc := range cases {
		if got := tc.c.InRange(); got != tc.want {
			t.Errorf("%+v.InRange() = %v, want %v", tc.c, got, tc.want)
		}
	}
}
