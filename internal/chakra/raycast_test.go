package chakra

import (
	"math"
	"testing"

	"vastu-chakra/pkg/geometry"
)

var square = []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}

func TestCastToBoundarySquare(t *testing.T) {
	center := geometry.Point2D{X: 5, Y: 5}

	tests := []struct {
		name  string
		angle float64
		want  geometry.Point2D
	}{
		{"north hits top edge", 0, geometry.Point2D{X: 5, Y: 0}},
		{"east hits right edge", 90, geometry.Point2D{X: 10, Y: 5}},
		{"south hits bottom edge", 180, geometry.Point2D{X: 5, Y: 10}},
		{"west hits left edge", 270, geometry.Point2D{X: 0, Y: 5}},
		{"north-east hits corner", 45, geometry.Point2D{X: 10, Y: 0}},
		{"wrapped angle", 360 + 90, geometry.Point2D{X: 10, Y: 5}},
		{"negative angle", -90, geometry.Point2D{X: 0, Y: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CastToBoundary(center, tt.angle, 0, square, 100)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("CastToBoundary(%v°) = (%v, %v), want (%v, %v)",
					tt.angle, got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}

func TestCastToBoundaryRotationAdditive(t *testing.T) {
	center := geometry.Point2D{X: 5, Y: 5}

	for _, angle := range []float64{0, 13, 45, 90.5, 181, 359} {
		for _, rot := range []float64{0, 30, -75, 400} {
			a := CastToBoundary(center, angle, rot, square, 100)
			b := CastToBoundary(center, 0, rot+angle, square, 100)
			if math.Abs(a.X-b.X) > 1e-9 || math.Abs(a.Y-b.Y) > 1e-9 {
				t.Fatalf("angle %v rot %v: (%v,%v) != (%v,%v)", angle, rot, a.X, a.Y, b.X, b.Y)
			}
		}
	}
}

func TestCastToBoundaryFallback(t *testing.T) {
	center := geometry.Point2D{X: 100, Y: 100}
	const radius = 42.0

	for _, angle := range []float64{0, 33, 90, 200, 345} {
		got := CastToBoundary(center, angle, 0, nil, radius)
		if d := got.Distance(center); math.Abs(d-radius) > 1e-9 {
			t.Errorf("angle %v: fallback distance = %v, want %v", angle, d, radius)
		}
	}

	// Fewer than 3 points behaves like no polygon.
	two := square[:2]
	got := CastToBoundary(center, 0, 0, two, radius)
	if d := got.Distance(center); math.Abs(d-radius) > 1e-9 {
		t.Errorf("two-point polygon: fallback distance = %v, want %v", d, radius)
	}
}

func TestCastToBoundaryCenterOutside(t *testing.T) {
	// Center far outside the polygon, ray pointing away: no edge hit,
	// circle fallback applies silently.
	center := geometry.Point2D{X: -100, Y: 5}
	got := CastToBoundary(center, 270, 0, square, 50)
	want := geometry.Point2D{X: -150, Y: 5}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("got (%v,%v), want (%v,%v)", got.X, got.Y, want.X, want.Y)
	}
}

func TestCastToBoundaryNearestCrossing(t *testing.T) {
	// A concave outline where the northward ray crosses two edges.
	// The cast must stop at the first (nearest) crossing.
	concave := []geometry.Point2D{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 4},
		{X: 2, Y: 4}, {X: 2, Y: 6}, {X: 10, Y: 6},
		{X: 10, Y: 10}, {X: 0, Y: 10},
	}
	center := geometry.Point2D{X: 5, Y: 8}

	got := CastToBoundary(center, 0, 0, concave, 100)
	want := geometry.Point2D{X: 5, Y: 6}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("got (%v,%v), want nearest crossing (%v,%v)", got.X, got.Y, want.X, want.Y)
	}
}

func TestUnitVectorConvention(t *testing.T) {
	tests := []struct {
		angle float64
		want  geometry.Point2D
	}{
		{0, geometry.Point2D{X: 0, Y: -1}},  // up
		{90, geometry.Point2D{X: 1, Y: 0}},  // right
		{180, geometry.Point2D{X: 0, Y: 1}}, // down
		{270, geometry.Point2D{X: -1, Y: 0}},
	}
	for _, tt := range tests {
		got := UnitVector(tt.angle)
		if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
			t.Errorf("UnitVector(%v) = (%v,%v), want (%v,%v)", tt.angle, got.X, got.Y, tt.want.X, tt.want.Y)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{365, 5},
		{-5, 355},
		{-725, 355},
		{722.5, 2.5},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
