package geo

import (
	"math"
	"testing"
)

func TestMiles_IdenticalPoints(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{61.2181, -149.9003},  // Anchorage
		{47.6062, -122.3321},  // Seattle
		{-33.8688, 151.2093},  // Sydney
		{89.9, 179.9},
	}

	for _, p := range points {
		if d := Miles(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Miles(%v, %v, same) = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestMiles_Symmetric(t *testing.T) {
	a := [2]float64{61.2181, -149.9003}
	b := [2]float64{47.6062, -122.3321}

	d1 := Miles(a[0], a[1], b[0], b[1])
	d2 := Miles(b[0], b[1], a[0], a[1])

	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
	if d1 <= 0 {
		t.Errorf("expected positive distance, got %v", d1)
	}
}

func TestMiles_KnownDistance(t *testing.T) {
	// Anchorage to Seattle is roughly 1,448 miles great-circle.
	d := Miles(61.2181, -149.9003, 47.6062, -122.3321)
	if d < 1400 || d > 1500 {
		t.Errorf("Anchorage-Seattle distance = %v, want ~1448", d)
	}
}

func TestMiles_ShortDistance(t *testing.T) {
	// Two points ~1 degree of latitude apart: ~69 miles.
	d := Miles(47.0, -122.0, 48.0, -122.0)
	if d < 68 || d > 70 {
		t.Errorf("1 degree latitude = %v miles, want ~69", d)
	}
}
