package geo

import (
	"math"
	"testing"
)

func TestHaversine_KnownDistance(t *testing.T) {
	// Tokyo Station -> Shin-Osaka: ~390 km great-circle.
	d := Haversine(35.6812, 139.7671, 34.7338, 135.5003)
	if d < 380 || d > 410 {
		t.Errorf("Tokyo-Osaka distance = %.1f km, want ~390 km", d)
	}
}

func TestHaversine_ZeroForSamePoint(t *testing.T) {
	d := Haversine(35.0, 139.0, 35.0, 139.0)
	if d != 0 {
		t.Errorf("same-point distance = %v, want 0", d)
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	a := Haversine(35.6, 139.7, 34.7, 135.5)
	b := Haversine(34.7, 135.5, 35.6, 139.7)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", a, b)
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"valid tokyo", 35.68, 139.77, true},
		{"lat too high", 90.1, 0, false},
		{"lat too low", -90.1, 0, false},
		{"lon too high", 0, 180.1, false},
		{"lon too low", 0, -180.1, false},
		{"boundaries", 90, -180, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateCoordinates(tt.lat, tt.lon); got != tt.want {
				t.Errorf("ValidateCoordinates(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}
